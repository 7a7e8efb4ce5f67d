package parser

import (
	"strings"

	"github.com/robinvdvleuten/ptaledger/ast"
)

// SyntaxError reports that the input does not match the grammar.
//
// Pos and Offset identify the furthest position the parser reached; Expected
// holds the rules that were attempted there, sorted and without duplicates.
type SyntaxError struct {
	Filename string
	Pos      ast.FilePosition
	Offset   int
	Expected []Rule
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		b.WriteString(e.Filename)
		b.WriteByte(':')
	}
	b.WriteString(e.Pos.String())
	b.WriteString(": syntax error")
	switch len(e.Expected) {
	case 0:
	case 1:
		b.WriteString(": expected ")
		b.WriteString(e.Expected[0].String())
	default:
		b.WriteString(": expected one of ")
		b.WriteString(strings.Join(e.ExpectedNames(), ", "))
	}
	return b.String()
}

// GetPosition returns the position of the error.
func (e *SyntaxError) GetPosition() ast.FilePosition {
	return e.Pos
}

// ExpectedNames returns the display names of the expected rules.
func (e *SyntaxError) ExpectedNames() []string {
	names := make([]string, len(e.Expected))
	for i, r := range e.Expected {
		names[i] = r.String()
	}
	return names
}
