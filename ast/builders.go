package ast

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// NewDate parses a date string in YYYY-MM-DD format.
// Returns an error if the string is not a valid calendar date.
//
// Example:
//
//	date, err := ast.NewDate("2009-01-09")
func NewDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// NewDateFromTime creates a Date from the year, month and day of t.
func NewDateFromTime(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewAccount splits name on the account separator and validates every segment.
//
// Example:
//
//	account, err := ast.NewAccount("assets:cash")
func NewAccount(name string) (RawAccountDescriptor, error) {
	path := strings.Split(name, AccountSeparator)
	for i, segment := range path {
		if !validSegment(segment, i == 0) {
			return RawAccountDescriptor{}, fmt.Errorf("invalid account %q: bad segment %d %q", name, i+1, segment)
		}
	}
	return RawAccountDescriptor{Path: path}, nil
}

func validSegment(segment string, topLevel bool) bool {
	if segment == "" {
		return false
	}
	for i, r := range segment {
		switch {
		case unicode.IsLetter(r):
		case unicode.IsDigit(r) && (i > 0 || !topLevel):
		default:
			return false
		}
	}
	return true
}

// NewPosting creates a posting from an account name and a decimal string.
//
// Example:
//
//	posting, err := ast.NewPosting("Assets", "1.0000")
func NewPosting(account, value string) (RawPosting, error) {
	acct, err := NewAccount(account)
	if err != nil {
		return RawPosting{}, err
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return RawPosting{}, fmt.Errorf("invalid amount value %q: %w", value, err)
	}
	return RawPosting{Account: acct, Value: v}, nil
}
