package ast

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 extended calendar date layout used by ledgers.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day, always in UTC.
type Date struct {
	time.Time
}

// String returns the date as YYYY-MM-DD. The zero Date is 0001-01-01, a
// valid ledger date.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MarshalJSON renders the date as a JSON string instead of a timestamp.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// Annotation marks the state of a transaction.
type Annotation string

const (
	// AnnotationCleared is the "*" flag of a completed transaction.
	AnnotationCleared Annotation = "*"
	// AnnotationPending is the "!" flag of a transaction that needs review.
	AnnotationPending Annotation = "!"
	// AnnotationTxn is the "txn" keyword, equivalent to an unflagged transaction.
	AnnotationTxn Annotation = "txn"
)

// Valid reports whether a is one of the known annotations.
func (a Annotation) Valid() bool {
	switch a {
	case AnnotationCleared, AnnotationPending, AnnotationTxn:
		return true
	}
	return false
}

// AccountSeparator joins the segments of an account path.
const AccountSeparator = ":"

// RawAccountDescriptor is an account path such as assets:cash:petty.
//
// The first segment starts with a letter, later segments may start with a
// letter or a digit, and no segment is empty.
type RawAccountDescriptor struct {
	Path  []string
	Pinfo ParserInfo
}

// String joins the path with the account separator.
func (a RawAccountDescriptor) String() string {
	return strings.Join(a.Path, AccountSeparator)
}

// FormatDecimal renders an amount with its fractional digits preserved.
// Whole numbers get a single fractional zero so the output always reads back
// as a decimal value.
func FormatDecimal(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 1 {
		places = 1
	}
	return d.StringFixed(places)
}

// Quote renders s as a double-quoted ledger string, escaping quotes and backslashes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote reverses the escapes applied by Quote on the text between the quotes.
func Unquote(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}
