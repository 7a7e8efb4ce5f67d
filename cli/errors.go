package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/ptaledger/errors"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})

	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	text *errors.TextFormatter
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	var opts []errors.TextFormatterOption
	if source != nil {
		opts = append(opts, errors.WithSource(source))
	}
	return &ErrorRenderer{text: errors.NewTextFormatter(opts...)}
}

// Render formats a single error with styling and context. The message is
// rendered as an error, source lines dimmed and the caret highlighted.
func (r *ErrorRenderer) Render(err error) string {
	plain := r.text.Format(err)
	message, excerpt, found := strings.Cut(plain, "\n\n")

	var buf strings.Builder
	buf.WriteString(errorStyle.Render(message))
	if !found {
		return buf.String()
	}
	buf.WriteString("\n\n")

	for _, line := range strings.SplitAfter(excerpt, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.TrimSpace(text) == "^":
			buf.WriteString(strings.TrimSuffix(text, "^"))
			buf.WriteString(errCaretStyle.Render("^"))
		case text == "":
		default:
			buf.WriteString("   ")
			buf.WriteString(errContextStyle.Render(strings.TrimPrefix(text, "   ")))
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	var buf strings.Builder
	for i, err := range errs {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(r.Render(err))
	}
	return buf.String()
}
