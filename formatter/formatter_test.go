package formatter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/ledger"
	"github.com/robinvdvleuten/ptaledger/telemetry"
)

func mustParse(t testing.TB, text string) *ledger.ParsedLedger {
	t.Helper()
	l, err := ledger.Parse(context.Background(), text)
	assert.NoError(t, err)
	return l
}

func format(t testing.TB, f *Formatter, text string) string {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, f.Format(context.Background(), mustParse(t, text), &buf))
	return buf.String()
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		input    string
		expected string
	}{
		{
			name: "Transaction",
			input: "2001-09-11 open assets:cash\n" +
				"2009-01-09 ! \"Bitcoin launch date\" ; launch\n" +
				"\tassets:cash    1.0000\n" +
				"\tequity    -1.0000 ; genesis\n" +
				"2010-01-01 close assets:cash\n",
			expected: "2001-09-11 open assets:cash\n" +
				"\n" +
				"2009-01-09 ! \"Bitcoin launch date\" ; launch\n" +
				"  assets:cash   1.0000\n" +
				"  equity       -1.0000 ; genesis\n" +
				"\n" +
				"2010-01-01 close assets:cash\n",
		},
		{
			name: "Directives",
			input: "option   \"title\"   \"My \\\"Home\\\"\"\n" +
				"1792-01-01 commodity USD ; US Dollar\n" +
				"2010-01-01 balance assets:cash   -1.5000   USD\n",
			expected: "option \"title\" \"My \\\"Home\\\"\"\n" +
				"1792-01-01 commodity USD\n" +
				"2010-01-01 balance assets:cash  -1.5000 USD\n",
		},
		{
			name: "ConsecutiveTransactions",
			input: "2009-01-09 * \"A\"\n  a  1.00\n" +
				"2009-01-10 txn \"B\"\n  b  -1.00\n",
			expected: "2009-01-09 * \"A\"\n  a   1.00\n" +
				"\n" +
				"2009-01-10 txn \"B\"\n  b  -1.00\n",
		},
		{
			name:     "ExplicitWidths",
			opts:     []Option{WithPrefixWidth(20), WithNumWidth(10)},
			input:    "2009-01-09 * \"x\"\n  a    1.00\n",
			expected: "2009-01-09 * \"x\"\n  a" + strings.Repeat(" ", 23) + "1.00\n",
		},
		{
			name:     "NarrowPrefixWidth",
			opts:     []Option{WithPrefixWidth(1)},
			input:    "2009-01-09 * \"x\"\n  assets    1.00\n",
			expected: "2009-01-09 * \"x\"\n  assets  1.00\n",
		},
		{
			name:     "EscapedDescription",
			input:    "2009-01-09 * \"say \\\"hi\\\" \\\\ bye\"\n  a  1.00\n",
			expected: "2009-01-09 * \"say \\\"hi\\\" \\\\ bye\"\n  a  1.00\n",
		},
		{
			name:     "FirstCalendarDay",
			input:    "0001-01-01 open a\n",
			expected: "0001-01-01 open a\n",
		},
		{
			name:     "Empty",
			input:    "; nothing here\n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format(t, New(tt.opts...), tt.input))
		})
	}
}

func TestFormatWithSource(t *testing.T) {
	input := "; Household ledger\n" +
		"* Accounts\n" +
		"2001-09-11 open assets:cash\n" +
		"\n" +
		"  ; the big day\n" +
		"2009-01-09 txn \"Launch\"\n" +
		"  assets:cash  1.00\n" +
		"  equity  -1.00\n" +
		"; trailing\n"

	expected := "; Household ledger\n" +
		"* Accounts\n" +
		"2001-09-11 open assets:cash\n" +
		"\n" +
		"; the big day\n" +
		"2009-01-09 txn \"Launch\"\n" +
		"  assets:cash   1.00\n" +
		"  equity       -1.00\n" +
		"; trailing\n"

	assert.Equal(t, expected, format(t, New(WithSource([]byte(input))), input))
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"2009-01-09 ! \"Bitcoin launch date\"\n\tAssets    1.0000\n\tEquity    -1.0000\n",
		"option \"title\" \"Household\"\n2001-09-11 open assets:cash\n2001-09-11 open equity\n",
		"2009-02-01 * \"Coffee\" ; morning\n  expenses:food    2.50 ; latte\n  assets:cash    -2.50\n" +
			"2010-01-01 balance assets:cash -1.5000 USD\n2011-01-01 close assets:cash\n",
		"0001-01-01 open a\n0001-01-01 * \"x\"\n  a 1.0\n",
	}

	for _, input := range inputs {
		first := format(t, New(), input)
		second := format(t, New(), first)
		assert.Equal(t, first, second)

		original := mustParse(t, input)
		reparsed := mustParse(t, first)
		assert.Equal(t, original.Len(), reparsed.Len())
		for i, e := range reparsed.Entries() {
			assert.Equal(t, original.Entries()[i].Kind(), e.Kind())
		}
		assert.Equal(t, len(original.Accounts()), len(reparsed.Accounts()))
	}
}

func TestFormatEntry(t *testing.T) {
	f := New()

	var buf bytes.Buffer
	date, err := ast.NewDate("2024-01-01")
	assert.NoError(t, err)
	account, err := ast.NewAccount("assets:cash")
	assert.NoError(t, err)

	assert.NoError(t, f.FormatEntry(ast.Open{Date: date, Account: account}, &buf))
	assert.Equal(t, "2024-01-01 open assets:cash\n", buf.String())
}

func TestFormatTelemetry(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	var buf bytes.Buffer
	assert.NoError(t, New().Format(ctx, mustParse(t, "2001-09-11 open a\n"), &buf))

	var report bytes.Buffer
	collector.Report(&report, nil)
	assert.True(t, strings.HasPrefix(report.String(), "format: "))
}
