// Package errors renders parse errors for different consumers.
//
// Error types stay in the packages that produce them (parser.SyntaxError,
// builder.StructuralError, loader I/O errors); this package only handles
// presentation:
//   - TextFormatter: message followed by the offending source lines with a caret
//   - JSONFormatter: structured output for editors and scripts
package errors

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/builder"
	"github.com/robinvdvleuten/ptaledger/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that point into a source document.
type positioned interface {
	error
	GetPosition() ast.FilePosition
}

// Kind classifies err as "syntax", "structural" or "error".
func Kind(err error) string {
	var syntaxErr *parser.SyntaxError
	if stdErrors.As(err, &syntaxErr) {
		return "syntax"
	}
	var structuralErr *builder.StructuralError
	if stdErrors.As(err, &structuralErr) {
		return "structural"
	}
	return "error"
}

// Filename returns the file a parse error was attached to by the loader.
func Filename(err error) string {
	var syntaxErr *parser.SyntaxError
	if stdErrors.As(err, &syntaxErr) {
		return syntaxErr.Filename
	}
	var structuralErr *builder.StructuralError
	if stdErrors.As(err, &structuralErr) {
		return structuralErr.Filename
	}
	return ""
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	source []byte
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source the errors point into. Without it only the
// message is printed.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	var e positioned
	if tf.source != nil && stdErrors.As(err, &e) {
		return formatWithSourceContext(e.GetPosition(), err.Error(), string(tf.source))
	}
	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	var buf bytes.Buffer
	for i, err := range errs {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(tf.Format(err))
	}
	return buf.String()
}

// formatWithSourceContext writes message followed by the two lines before
// and the line after pos, with a caret under pos.Col.
func formatWithSourceContext(pos ast.FilePosition, message, source string) string {
	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n")

	lines := strings.Split(source, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" && pos.Line < len(lines) {
		lines = lines[:len(lines)-1]
	}

	start := max(pos.Line-3, 0)
	end := min(pos.Line, len(lines)-1)

	for i := start; i <= end; i++ {
		buf.WriteString(strings.TrimRight("   "+lines[i], " \t"))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Col > 0 {
			buf.WriteString("   ")
			buf.WriteString(caretPadding(lines[i], pos.Col))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// caretPadding returns the whitespace that lines a caret up with column col
// of line, keeping tabs so the caret stays aligned in a terminal.
func caretPadding(line string, col int) string {
	var b strings.Builder
	n := 0
	for _, r := range line {
		if n == col-1 {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	for ; n < col-1; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Kind     string        `json:"kind"`
	Message  string        `json:"message"`
	Position *PositionJSON `json:"position,omitempty"`
	Expected []string      `json:"expected,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Kind:    Kind(err),
		Message: err.Error(),
	}

	var e positioned
	if stdErrors.As(err, &e) {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: Filename(err),
			Line:     pos.Line,
			Column:   pos.Col,
		}
	}

	var syntaxErr *parser.SyntaxError
	if stdErrors.As(err, &syntaxErr) {
		errJSON.Expected = syntaxErr.ExpectedNames()
	}

	return errJSON
}
