// Package parser recognizes ledger text and produces a parse tree.
//
// The grammar is a hand-written parsing expression grammar: alternatives are
// tried in order and the first match wins, repetitions are greedy and never
// re-tried once a later rule fails. Every matched rule becomes a Node that
// records its byte span and line:col position. On failure the parser reports
// the furthest offset it reached and the rules it expected there.
//
// Example usage:
//
//	root, err := parser.Parse(parser.RuleLedger, text)
//	if err != nil {
//	    var syntaxErr *parser.SyntaxError
//	    if errors.As(err, &syntaxErr) {
//	        fmt.Println(syntaxErr.Pos, syntaxErr.ExpectedNames())
//	    }
//	}
package parser

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/ptaledger/ast"
)

// Parse matches input against the start rule. The rule must consume the
// whole input. The returned tree's root node is tagged with start.
func Parse(start Rule, input string) (*Node, error) {
	if start >= NumRules {
		return nil, fmt.Errorf("parser: unknown start rule %d", start)
	}

	p := newParser(input)
	ok := entryPoints[start](p)
	if ok && p.pos < len(p.src) {
		p.expect(RuleEOI)
		ok = false
	}
	if !ok {
		return nil, p.syntaxError()
	}
	return p.kids[0][0], nil
}

// parser holds the state of a single Parse call.
type parser struct {
	src   string
	lines *lineIndex
	pos   int

	stack []Rule     // rules currently being matched, innermost last
	kids  [][]*Node  // children collected for each active rule, plus the root slot

	furthest   int
	expected   []Rule
	lookaheads int // failures inside predicates are not recorded
}

func newParser(src string) *parser {
	return &parser{
		src:      src,
		lines:    newLineIndex(src),
		kids:     make([][]*Node, 1, 16),
		stack:    make([]Rule, 0, 16),
		furthest: -1,
	}
}

// mark is a backtracking point: an input offset and the number of children
// collected so far by the innermost active rule.
type mark struct {
	pos  int
	kids int
}

func (p *parser) mark() mark {
	return mark{pos: p.pos, kids: len(p.kids[len(p.kids)-1])}
}

func (p *parser) reset(m mark) {
	p.pos = m.pos
	top := len(p.kids) - 1
	p.kids[top] = p.kids[top][:m.kids]
}

// rule runs body as rule r. On success a node covering the consumed input is
// appended to the enclosing rule's children; on failure the input position
// is restored.
func (p *parser) rule(r Rule, body func() bool) bool {
	start := p.pos
	p.stack = append(p.stack, r)
	p.kids = append(p.kids, nil)

	ok := body()

	children := p.kids[len(p.kids)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.kids = p.kids[:len(p.kids)-1]

	if !ok {
		p.pos = start
		return false
	}

	top := len(p.kids) - 1
	p.kids[top] = append(p.kids[top], &Node{
		Rule:     r,
		Span:     ast.Span{Start: start, End: p.pos},
		Pos:      p.lines.position(start),
		Text:     p.src[start:p.pos],
		Children: children,
	})
	return true
}

// group runs body as an unnamed sequence that either matches completely or
// consumes nothing.
func (p *parser) group(body func() bool) bool {
	m := p.mark()
	if body() {
		return true
	}
	p.reset(m)
	return false
}

// optional runs body once and succeeds either way.
func (p *parser) optional(body func() bool) bool {
	p.group(body)
	return true
}

// zeroOrMore repeats body until it fails or stops consuming input.
func (p *parser) zeroOrMore(body func() bool) bool {
	for {
		m := p.mark()
		if !p.group(body) {
			return true
		}
		if p.pos == m.pos {
			p.reset(m)
			return true
		}
	}
}

// oneOrMore is zeroOrMore with at least one required match.
func (p *parser) oneOrMore(body func() bool) bool {
	if !p.group(body) {
		return false
	}
	return p.zeroOrMore(body)
}

// not succeeds, consuming nothing, when body does not match here.
func (p *parser) not(body func() bool) bool {
	m := p.mark()
	p.lookaheads++
	matched := body()
	p.lookaheads--
	p.reset(m)
	if matched {
		p.fail()
		return false
	}
	return true
}

// fail records that the innermost reportable rule could not continue at the
// current offset.
func (p *parser) fail() {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if !p.stack[i].silent() {
			p.expect(p.stack[i])
			return
		}
	}
}

func (p *parser) expect(r Rule) {
	if p.lookaheads > 0 {
		return
	}
	switch {
	case p.pos > p.furthest:
		p.furthest = p.pos
		p.expected = append(p.expected[:0], r)
	case p.pos == p.furthest:
		p.expected = append(p.expected, r)
	}
}

func (p *parser) syntaxError() *SyntaxError {
	offset := p.furthest
	if offset < 0 {
		offset = p.pos
	}
	expected := slices.Clone(p.expected)
	slices.Sort(expected)
	expected = slices.Compact(expected)
	return &SyntaxError{
		Pos:      p.lines.position(offset),
		Offset:   offset,
		Expected: expected,
	}
}

// Primitive matchers. None of them advance on failure.

func (p *parser) byte(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	p.fail()
	return false
}

func (p *parser) byteRange(lo, hi byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] >= lo && p.src[p.pos] <= hi {
		p.pos++
		return true
	}
	p.fail()
	return false
}

func (p *parser) literal(s string) bool {
	if len(p.src)-p.pos >= len(s) && p.src[p.pos:p.pos+len(s)] == s {
		p.pos += len(s)
		return true
	}
	p.fail()
	return false
}

func (p *parser) runeIf(pred func(rune) bool) bool {
	if p.pos < len(p.src) {
		r, size := decodeRune(p.src[p.pos:])
		if pred(r) {
			p.pos += size
			return true
		}
	}
	p.fail()
	return false
}

func (p *parser) digits(n int) bool {
	start := p.pos
	for i := 0; i < n; i++ {
		if !p.byteRange('0', '9') {
			p.pos = start
			return false
		}
	}
	return true
}

func (p *parser) digitRun() bool {
	if !p.byteRange('0', '9') {
		return false
	}
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	return true
}

func (p *parser) newline() bool {
	if p.pos < len(p.src) && p.src[p.pos] == '\n' {
		p.pos++
		return true
	}
	if p.pos+1 < len(p.src) && p.src[p.pos] == '\r' && p.src[p.pos+1] == '\n' {
		p.pos += 2
		return true
	}
	p.fail()
	return false
}

func (p *parser) atNewline() bool {
	return p.pos < len(p.src) && (p.src[p.pos] == '\n' ||
		(p.src[p.pos] == '\r' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '\n'))
}

func (p *parser) eoi() bool {
	if p.pos == len(p.src) {
		return true
	}
	p.fail()
	return false
}
