package builder

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/parser"
)

// StructuralError reports a parse tree the builder cannot convert. It points
// at a mismatch between the grammar and the builder, or at a conversion the
// grammar accepted but the value types reject, such as 2023-02-31.
type StructuralError struct {
	Filename string
	Pos      ast.FilePosition
	Rule     parser.Rule
	Message  string
	Err      error
}

func newStructuralError(n *parser.Node, err error, format string, args ...any) *StructuralError {
	return &StructuralError{
		Pos:     n.Pos,
		Rule:    n.Rule,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		b.WriteString(e.Filename)
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%s: %s (%s)", e.Pos, e.Message, e.Rule)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// GetPosition returns the position of the offending node.
func (e *StructuralError) GetPosition() ast.FilePosition {
	return e.Pos
}
