package ast

import "fmt"

// FilePosition is a location in the source text.
// Both fields are 1-based; Col counts runes, not bytes.
type FilePosition struct {
	Line int
	Col  int
}

// IsZero reports whether the position was never assigned.
func (p FilePosition) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// String returns the position as "line:col".
func (p FilePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ParserInfo records the provenance of a constructed record.
type ParserInfo struct {
	Position FilePosition
}

// Span represents a range of byte offsets in the source text.
type Span struct {
	Start int // inclusive
	End   int // exclusive
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text extracts the source text for this span.
// Returns empty string if the span does not fit the source.
func (s Span) Text(source string) string {
	if s.Start < 0 || s.End < s.Start || s.End > len(source) {
		return ""
	}
	return source[s.Start:s.End]
}
