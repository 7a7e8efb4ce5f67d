package builder

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/parser"
)

func build(t *testing.T, input string) []ast.Entry {
	t.Helper()
	root, err := parser.Parse(parser.RuleLedger, input)
	assert.NoError(t, err)

	var entries []ast.Entry
	err = New().Build(root, func(e ast.Entry) error {
		entries = append(entries, e)
		return nil
	})
	assert.NoError(t, err)
	return entries
}

func TestEveryRuleHasAnAction(t *testing.T) {
	for _, r := range parser.Rules() {
		assert.NotEqual(t, actionUnmapped, actionFor(r), "rule %s has no builder action", r)
	}
	assert.Equal(t, actionUnmapped, actionFor(parser.NumRules))
}

func TestBuildTransaction(t *testing.T) {
	entries := build(t, "2009-01-09 ! \"Bitcoin launch date\" ; genesis\n\tAssets    1.0000 ; in\n\tEquity    -1.0000\n")
	assert.Equal(t, 1, len(entries))

	txn, ok := entries[0].(ast.RawTransaction)
	assert.True(t, ok)
	assert.Equal(t, "2009-01-09", txn.Date.String())
	assert.Equal(t, ast.AnnotationPending, txn.Annotation)
	assert.Equal(t, "Bitcoin launch date", txn.Description)
	assert.Equal(t, "genesis", txn.Comment)
	assert.Equal(t, ast.FilePosition{Line: 1, Col: 1}, txn.Pinfo.Position)

	assert.Equal(t, 2, len(txn.Postings))
	assert.Equal(t, []string{"Assets"}, txn.Postings[0].Account.Path)
	assert.Equal(t, "1.0000", ast.FormatDecimal(txn.Postings[0].Value))
	assert.Equal(t, "in", txn.Postings[0].Comment)
	assert.Equal(t, ast.FilePosition{Line: 2, Col: 1}, txn.Postings[0].Pinfo.Position)
	assert.Equal(t, ast.FilePosition{Line: 2, Col: 2}, txn.Postings[0].Account.Pinfo.Position)

	assert.Equal(t, []string{"Equity"}, txn.Postings[1].Account.Path)
	assert.Equal(t, "-1.0000", ast.FormatDecimal(txn.Postings[1].Value))
	assert.Equal(t, "", txn.Postings[1].Comment)
}

func TestBuildDescriptionEscapes(t *testing.T) {
	entries := build(t, "2009-01-09 txn \"say \\\"hi\\\" \"\n  a    1.0\n")
	txn := entries[0].(ast.RawTransaction)
	assert.Equal(t, `say "hi" `, txn.Description)
	assert.Equal(t, ast.AnnotationTxn, txn.Annotation)
}

func TestBuildDirectives(t *testing.T) {
	input := `option "title" "Test \"ledger\""
2001-09-11 open assets:cash
2001-09-11 close assets
1792-01-01 commodity USD ; US Dollar
2001-09-11 balance assets1:2cash -0.456 USD
`
	entries := build(t, input)
	assert.Equal(t, 5, len(entries))

	opt := entries[0].(ast.Option)
	assert.Equal(t, "title", opt.Name)
	assert.Equal(t, `Test "ledger"`, opt.Value)

	open := entries[1].(ast.Open)
	assert.Equal(t, []string{"assets", "cash"}, open.Account.Path)
	assert.Equal(t, "2001-09-11", open.Date.String())
	assert.Equal(t, ast.FilePosition{Line: 2, Col: 1}, open.Pinfo.Position)

	closed := entries[2].(ast.Close)
	assert.Equal(t, []string{"assets"}, closed.Account.Path)

	commodity := entries[3].(ast.Commodity)
	assert.Equal(t, "USD", commodity.Symbol)
	assert.Equal(t, "1792-01-01", commodity.Date.String())

	balance := entries[4].(ast.Balance)
	assert.Equal(t, []string{"assets1", "2cash"}, balance.Account.Path)
	assert.Equal(t, "-0.456", ast.FormatDecimal(balance.Amount))
	assert.Equal(t, "USD", balance.Currency)
}

func TestBuildFirstCalendarDay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  string
	}{
		{"Open", "0001-01-01 open a\n", ast.KindOpen},
		{"Close", "0001-01-01 close a\n", ast.KindClose},
		{"Commodity", "0001-01-01 commodity USD\n", ast.KindCommodity},
		{"Balance", "0001-01-01 balance a 1.0 USD\n", ast.KindBalance},
		{"Transaction", "0001-01-01 * \"x\"\n  a 1.0\n", ast.KindTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := build(t, tt.input)
			assert.Equal(t, 1, len(entries))
			assert.Equal(t, tt.kind, entries[0].Kind())
		})
	}

	t.Run("HeaderOnly", func(t *testing.T) {
		node, err := parser.Parse(parser.RuleTransHeader, "0001-01-01 txn \"x\"\n")
		assert.NoError(t, err)
		txn, err := New().Transaction(node)
		assert.NoError(t, err)
		assert.Equal(t, "0001-01-01", txn.Date.String())
	})
}

func TestBuildIgnoresTrivia(t *testing.T) {
	entries := build(t, "; comment\n* Heading\n\n   \n;; more\n")
	assert.Equal(t, 0, len(entries))
}

func TestBuildInternsSegments(t *testing.T) {
	entries := build(t, "2001-09-11 open assets:cash\n2001-09-12 close assets:cash\n")
	a := entries[0].(ast.Open).Account.Path[1]
	b := entries[1].(ast.Close).Account.Path[1]
	assert.Equal(t, a, b)
	assert.True(t, unsafe.StringData(a) == unsafe.StringData(b))
}

func TestBuildStopsAtYieldError(t *testing.T) {
	root, err := parser.Parse(parser.RuleLedger, "2001-09-11 open a\n2001-09-11 open b\n")
	assert.NoError(t, err)

	stop := errors.New("stop")
	calls := 0
	err = New().Build(root, func(ast.Entry) error {
		calls++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}

func TestStructuralErrors(t *testing.T) {
	t.Run("InvalidCalendarDate", func(t *testing.T) {
		root, err := parser.Parse(parser.RuleLedger, "2023-01-01 open a\n2023-02-31 open b\n")
		assert.NoError(t, err)

		err = New().Build(root, func(ast.Entry) error { return nil })
		var structErr *StructuralError
		assert.True(t, errors.As(err, &structErr))
		assert.Equal(t, parser.RuleDate, structErr.Rule)
		assert.Equal(t, ast.FilePosition{Line: 2, Col: 1}, structErr.GetPosition())
		assert.Error(t, errors.Unwrap(err))
	})

	t.Run("ComponentAtEntryLevel", func(t *testing.T) {
		root, err := parser.Parse(parser.RuleDecimalValue, "1.0")
		assert.NoError(t, err)

		err = New().Build(root, func(ast.Entry) error { return nil })
		var structErr *StructuralError
		assert.True(t, errors.As(err, &structErr))
		assert.Equal(t, parser.RuleDecimalValue, structErr.Rule)
	})

	t.Run("UnmappedRule", func(t *testing.T) {
		root := &parser.Node{
			Rule:     parser.RuleLedger,
			Children: []*parser.Node{{Rule: parser.NumRules, Pos: ast.FilePosition{Line: 3, Col: 1}}},
		}
		err := New().Build(root, func(ast.Entry) error { return nil })
		var structErr *StructuralError
		assert.True(t, errors.As(err, &structErr))
		assert.Equal(t, ast.FilePosition{Line: 3, Col: 1}, structErr.Pos)
		assert.Contains(t, structErr.Error(), "no conversion defined")
	})

	t.Run("UnparseableDecimal", func(t *testing.T) {
		_, err := Decimal(&parser.Node{Rule: parser.RuleDecimalValue, Text: "1.2.3", Pos: ast.FilePosition{Line: 1, Col: 5}})
		var structErr *StructuralError
		assert.True(t, errors.As(err, &structErr))
		assert.Equal(t, ast.FilePosition{Line: 1, Col: 5}, structErr.Pos)
		assert.Error(t, structErr.Unwrap())
	})

	t.Run("WrongRule", func(t *testing.T) {
		_, err := Date(&parser.Node{Rule: parser.RuleDecimalValue, Text: "1.0"})
		assert.Error(t, err)
		_, err = Decimal(nil)
		assert.Error(t, err)
	})
}

func TestFragmentConversions(t *testing.T) {
	tests := []string{"0.00000001", "1.23", "123.456", "-123.456789012", "-0.00000001"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			node, err := parser.Parse(parser.RuleDecimalValue, input)
			assert.NoError(t, err)
			d, err := Decimal(node)
			assert.NoError(t, err)
			assert.Equal(t, input, ast.FormatDecimal(d))
		})
	}

	t.Run("Date", func(t *testing.T) {
		node, err := parser.Parse(parser.RuleDate, "1900-01-01")
		assert.NoError(t, err)
		d, err := Date(node)
		assert.NoError(t, err)
		assert.Equal(t, 1900, d.Year())
	})

	t.Run("Account", func(t *testing.T) {
		node, err := parser.Parse(parser.RuleAccountDescriptor, "a1:sub:123")
		assert.NoError(t, err)
		acct, err := Account(node)
		assert.NoError(t, err)
		assert.Equal(t, []string{"a1", "sub", "123"}, acct.Path)
		assert.Equal(t, "a1:sub:123", acct.String())
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		node, err := parser.Parse(parser.RuleTransHeader, "2009-01-09 * \"Bitcoin launch date\"\n")
		assert.NoError(t, err)
		txn, err := New().Transaction(node)
		assert.NoError(t, err)
		assert.Equal(t, ast.AnnotationCleared, txn.Annotation)
		assert.Equal(t, 0, len(txn.Postings))
	})
}

func TestInterner(t *testing.T) {
	in := NewInterner(4)
	a := in.Intern("assets")
	b := in.Intern(string([]byte("assets")))
	assert.True(t, unsafe.StringData(a) == unsafe.StringData(b))
	assert.Equal(t, 1, in.Size())

	in.Intern("cash")
	assert.Equal(t, 2, in.Size())

	in.Reset()
	assert.Equal(t, 0, in.Size())
}

func TestSharedInterner(t *testing.T) {
	in := NewInterner(8)
	b := New(WithInterner(in))

	root, err := parser.Parse(parser.RuleLedger, "2024-01-01 open assets:cash\n2024-01-02 commodity USD\n")
	assert.NoError(t, err)
	assert.NoError(t, b.Build(root, func(ast.Entry) error { return nil }))

	assert.Equal(t, 3, in.Size())
}
