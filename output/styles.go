// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// ANSI palette indices used by the styles.
const (
	colorRed     = "1"
	colorGreen   = "2"
	colorYellow  = "3"
	colorMagenta = "5"
	colorCyan    = "6"
)

// Styles renders text for a particular writer. When the writer is not a
// terminal every style returns its input unchanged.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates styles for w.
func NewStyles(w io.Writer) *Styles {
	return &Styles{output: termenv.NewOutput(w)}
}

func (s *Styles) fg(text, color string) termenv.Style {
	return s.output.String(text).Foreground(s.output.Color(color))
}

// Success renders green bold text.
func (s *Styles) Success(text string) string { return s.fg(text, colorGreen).Bold().String() }

// Error renders red bold text.
func (s *Styles) Error(text string) string { return s.fg(text, colorRed).Bold().String() }

// Warning renders yellow bold text.
func (s *Styles) Warning(text string) string { return s.fg(text, colorYellow).Bold().String() }

// FilePath renders a file name or position.
func (s *Styles) FilePath(text string) string { return s.fg(text, colorCyan).String() }

// Account renders an account path.
func (s *Styles) Account(text string) string { return s.fg(text, colorYellow).String() }

// Amount renders a decimal amount or currency.
func (s *Styles) Amount(text string) string { return s.fg(text, colorMagenta).String() }

// Rule renders a grammar rule name.
func (s *Styles) Rule(text string) string { return s.fg(text, colorCyan).Bold().String() }

// Keyword renders bold text.
func (s *Styles) Keyword(text string) string { return s.output.String(text).Bold().String() }

// Dim renders faint text for secondary information.
func (s *Styles) Dim(text string) string { return s.output.String(text).Faint().String() }

// Timing renders a duration, in red when the operation was slow.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.fg(text, colorRed).String()
	}
	return s.Dim(text)
}

// Output returns the underlying termenv output.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
