// Package formatter renders a ParsedLedger back to canonical ledger text.
//
// Amounts of postings and balance directives are right-aligned on a common
// column. Re-parsing the output yields the same entries; only positions and
// layout change.
package formatter

import (
	"context"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/ledger"
	"github.com/robinvdvleuten/ptaledger/telemetry"
)

const (
	// Indentation is written before every posting.
	Indentation = "  "

	// MinimumSpacing is the minimum number of spaces between an account and
	// its amount.
	MinimumSpacing = 2
)

// Formatter handles formatting of ledgers with aligned amounts.
type Formatter struct {
	// PrefixWidth is the width in cells to render the text before an amount
	// to. If 0, it is computed from the contents.
	PrefixWidth int

	// NumWidth is the width to right-align each amount to. If 0, it is
	// computed from the contents.
	NumWidth int

	source []byte
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithPrefixWidth sets the width in cells to render account prefixes to.
func WithPrefixWidth(width int) Option {
	return func(f *Formatter) {
		f.PrefixWidth = width
	}
}

// WithNumWidth sets the width to render each amount to.
func WithNumWidth(width int) Option {
	return func(f *Formatter) {
		f.NumWidth = width
	}
}

// WithSource preserves the standalone comments, headings and blank lines of
// the document the ledger was parsed from.
func WithSource(source []byte) Option {
	return func(f *Formatter) {
		f.source = source
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// widthMetrics holds the column layout of one formatting run.
type widthMetrics struct {
	prefixWidth int
	numWidth    int
}

func (f *Formatter) calculateWidthMetrics(entries []ast.Entry) widthMetrics {
	var m widthMetrics
	for _, e := range entries {
		switch e := e.(type) {
		case ast.RawTransaction:
			for _, p := range e.Postings {
				m.prefixWidth = max(m.prefixWidth, runewidth.StringWidth(postingPrefix(p)))
				m.numWidth = max(m.numWidth, len(ast.FormatDecimal(p.Value)))
			}
		case ast.Balance:
			m.prefixWidth = max(m.prefixWidth, runewidth.StringWidth(balancePrefix(e)))
			m.numWidth = max(m.numWidth, len(ast.FormatDecimal(e.Amount)))
		}
	}
	m.prefixWidth += MinimumSpacing

	if f.PrefixWidth > 0 {
		m.prefixWidth = f.PrefixWidth
	}
	if f.NumWidth > 0 {
		m.numWidth = f.NumWidth
	}
	return m
}

// Format writes l to w.
func (f *Formatter) Format(ctx context.Context, l *ledger.ParsedLedger, w io.Writer) error {
	_, timer := telemetry.StartTimer(ctx, "format")
	defer timer.End()

	entries := l.Entries()
	metrics := f.calculateWidthMetrics(entries)

	var trivia []string
	if f.source != nil {
		trivia = strings.Split(string(f.source), "\n")
	}

	var buf strings.Builder
	buf.Grow(len(entries) * 64)

	lastLine := 0
	var prev ast.Entry
	for _, e := range entries {
		if trivia != nil {
			outputPrecedingContent(trivia, lastLine, e.Position().Line, &buf)
			lastLine = lastEntryLine(e)
		} else if prev != nil && (isTransaction(prev) || isTransaction(e)) {
			buf.WriteByte('\n')
		}
		f.formatEntry(e, metrics, &buf)
		prev = e
	}
	if trivia != nil {
		end := len(trivia)
		if end > 0 && trivia[end-1] == "" {
			end--
		}
		outputPrecedingContent(trivia, lastLine, end+1, &buf)
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatEntry writes a single entry, aligned on its own amounts.
func (f *Formatter) FormatEntry(e ast.Entry, w io.Writer) error {
	var buf strings.Builder
	f.formatEntry(e, f.calculateWidthMetrics([]ast.Entry{e}), &buf)
	_, err := io.WriteString(w, buf.String())
	return err
}

func (f *Formatter) formatEntry(e ast.Entry, m widthMetrics, buf *strings.Builder) {
	switch e := e.(type) {
	case ast.RawTransaction:
		f.formatTransaction(e, m, buf)
	case ast.Open:
		formatDated(buf, e.Date, "open", e.Account.String())
		buf.WriteByte('\n')
	case ast.Close:
		formatDated(buf, e.Date, "close", e.Account.String())
		buf.WriteByte('\n')
	case ast.Commodity:
		formatDated(buf, e.Date, "commodity", e.Symbol)
		buf.WriteByte('\n')
	case ast.Balance:
		prefix := balancePrefix(e)
		buf.WriteString(prefix)
		writeAmount(buf, prefix, ast.FormatDecimal(e.Amount), m)
		buf.WriteByte(' ')
		buf.WriteString(e.Currency)
		buf.WriteByte('\n')
	case ast.Option:
		buf.WriteString("option ")
		buf.WriteString(ast.Quote(e.Name))
		buf.WriteByte(' ')
		buf.WriteString(ast.Quote(e.Value))
		buf.WriteByte('\n')
	}
}

func (f *Formatter) formatTransaction(txn ast.RawTransaction, m widthMetrics, buf *strings.Builder) {
	buf.WriteString(txn.Date.String())
	buf.WriteByte(' ')
	buf.WriteString(string(txn.Annotation))
	buf.WriteByte(' ')
	buf.WriteString(ast.Quote(txn.Description))
	writeComment(buf, txn.Comment)
	buf.WriteByte('\n')

	for _, p := range txn.Postings {
		prefix := postingPrefix(p)
		buf.WriteString(prefix)
		writeAmount(buf, prefix, ast.FormatDecimal(p.Value), m)
		writeComment(buf, p.Comment)
		buf.WriteByte('\n')
	}
}

func formatDated(buf *strings.Builder, date ast.Date, keyword, arg string) {
	buf.WriteString(date.String())
	buf.WriteByte(' ')
	buf.WriteString(keyword)
	buf.WriteByte(' ')
	buf.WriteString(arg)
}

// writeAmount pads from the end of prefix to the amount column and writes
// value right-aligned within the number width.
func writeAmount(buf *strings.Builder, prefix, value string, m widthMetrics) {
	padding := max(m.prefixWidth-runewidth.StringWidth(prefix), MinimumSpacing)
	padding += max(m.numWidth-len(value), 0)
	buf.WriteString(strings.Repeat(" ", padding))
	buf.WriteString(value)
}

func writeComment(buf *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	buf.WriteString(" ; ")
	buf.WriteString(comment)
}

func postingPrefix(p ast.RawPosting) string {
	return Indentation + p.Account.String()
}

func balancePrefix(b ast.Balance) string {
	return b.Date.String() + " balance " + b.Account.String()
}

func isTransaction(e ast.Entry) bool {
	_, ok := e.(ast.RawTransaction)
	return ok
}

// lastEntryLine returns the last source line covered by e. Postings always
// follow their header on consecutive lines.
func lastEntryLine(e ast.Entry) int {
	line := e.Position().Line
	if txn, ok := e.(ast.RawTransaction); ok {
		line += len(txn.Postings)
	}
	return line
}

// outputPrecedingContent writes the comment, heading and blank lines strictly
// between lastLine and currentLine (both 1-based).
func outputPrecedingContent(lines []string, lastLine, currentLine int, buf *strings.Builder) {
	for line := lastLine + 1; line < currentLine && line <= len(lines); line++ {
		trimmed := strings.TrimSpace(lines[line-1])
		if trimmed != "" {
			buf.WriteString(trimmed)
		}
		buf.WriteByte('\n')
	}
}
