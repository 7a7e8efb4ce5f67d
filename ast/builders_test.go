package ast

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "2009-01-09", false},
		{"LeapYear", "2024-02-29", false},
		{"NotLeapYear", "2023-02-29", true},
		{"Invalid", "2024-13-01", true},
		{"BadFormat", "01/15/2024", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := NewDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, date.IsZero())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, date.String())
			}
		})
	}
}

func TestNewDateFromTime(t *testing.T) {
	in := time.Date(2015, 12, 31, 23, 59, 1, 0, time.FixedZone("X", 3600))
	date := NewDateFromTime(in)
	assert.Equal(t, "2015-12-31", date.String())
	assert.Equal(t, 0, date.Hour())
}

func TestNewAccount(t *testing.T) {
	valid := []string{"a", "a1", "a:a", "a1:a1", "a:123", "a1:sub:123", "asset:property:real", "Ähnlich:x"}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			acct, err := NewAccount(name)
			assert.NoError(t, err)
			assert.Equal(t, name, acct.String())
		})
	}

	invalid := []string{"", "1", "1b", "1-b", "bad1:", "a1:b@d", "a::b"}
	for _, name := range invalid {
		t.Run("Invalid/"+name, func(t *testing.T) {
			_, err := NewAccount(name)
			assert.Error(t, err)
		})
	}
}

func TestNewPosting(t *testing.T) {
	posting, err := NewPosting("Equity", "-1.0000")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Equity"}, posting.Account.Path)
	assert.Equal(t, "-1.0000", FormatDecimal(posting.Value))

	_, err = NewPosting("Equity", "abc")
	assert.Error(t, err)
}
