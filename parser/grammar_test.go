package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func assertParses(t *testing.T, rule Rule, inputs ...string) {
	t.Helper()
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			node, err := Parse(rule, input)
			assert.NoError(t, err)
			assert.Equal(t, rule, node.Rule)
			assert.Equal(t, input, node.Text)
		})
	}
}

func assertRejects(t *testing.T, rule Rule, inputs ...string) {
	t.Helper()
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(rule, input)
			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "expected syntax error for %q, got %v", input, err)
		})
	}
}

func TestAccountDescriptor(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assertParses(t, RuleAccountDescriptor,
			"a", "a1", "a:a", "a1:a", "a1:a1", "a:123", "a1:sub:123",
			"asset", "asset:property", "asset:property:real", "Assets1:cash2:3petty",
			"Über:café",
		)
	})

	t.Run("InvalidTopLevel", func(t *testing.T) {
		assertRejects(t, RuleTopLevelAcct, "1", "1b", "1-b", "1b-")
		assertRejects(t, RuleAccountDescriptor, "1bad", "1:a", ":a")
	})

	t.Run("Invalid", func(t *testing.T) {
		assertRejects(t, RuleAccountDescriptor, "a1:b@d", "bad1:", "a::b", "a b")
	})

	t.Run("TrailingSeparator", func(t *testing.T) {
		_, err := Parse(RuleAccountDescriptor, "bad1:")
		var syntaxErr *SyntaxError
		assert.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, 5, syntaxErr.Offset)
		assert.Equal(t, []Rule{RuleSubAcct}, syntaxErr.Expected)
	})

	t.Run("Segments", func(t *testing.T) {
		node, err := Parse(RuleAccountDescriptor, "a1:sub:123")
		assert.NoError(t, err)

		var segments []string
		for _, c := range node.Children {
			if c.Rule == RuleTopLevelAcct || c.Rule == RuleSubAcct {
				segments = append(segments, c.Text)
			}
		}
		assert.Equal(t, []string{"a1", "sub", "123"}, segments)
	})
}

func TestDecimalValue(t *testing.T) {
	assertParses(t, RuleDecimalValue,
		"0.00000001", "1.23", "123.456", "-123.456789012", "-0.00000001",
	)
	assertRejects(t, RuleDecimalValue,
		"0.", "-0.", "123", "-123", ".12", "-.12", "- 1.0", "1.0.0", "",
	)
}

func TestDate(t *testing.T) {
	assertParses(t, RuleDate, "1900-01-01", "2015-12-31", "0001-01-01", "9999-12-31", "2023-02-31")
	assertRejects(t, RuleDate,
		"000-01-01", "99990-01-01", "01-01", "1999", "1999-",
		"0000-01-01", "0000-00-01", "0000-13-01", "1999-12", "1999-12-",
		"0000-01-00", "0000-01-32", "1999-00-10", "1999-13-10", "1999-01-00", "1999-01-32",
		"000o-01-01", "1999-0x-12", "1999-12-0x",
		"1999 12-01", "1999-12 01", " 1999-12-01", "1999-12-01 ",
	)
}

func TestHeading(t *testing.T) {
	assertParses(t, RuleHeading, "* Accounts", "* Accounts\n", "** Sub section\n", "*\tTabbed", "* ")
	assertRejects(t, RuleHeading, "*", "*\n", "*Accounts", "**Sub", " * Indented", "Accounts")

	t.Run("NotSilentlyDropped", func(t *testing.T) {
		_, err := Parse(RuleLedger, "*garbage 2009-01-09 open a\n")
		var syntaxErr *SyntaxError
		assert.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, 1, syntaxErr.Pos.Line)
	})

	t.Run("IndentedEntries", func(t *testing.T) {
		_, err := Parse(RuleLedger, "* Accounts\n    2009-01-09 open a\n")
		var syntaxErr *SyntaxError
		assert.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, 2, syntaxErr.Pos.Line)
	})
}

func TestComment(t *testing.T) {
	assertParses(t, RuleComment, ";", "; comment", ";; nested ; semicolons")
	assertRejects(t, RuleComment, "comment", " ; leading space")
	assertParses(t, RuleCommentOrNewline,
		"\n", "\r\n", " \n", "\t\n", " ; comment 123 ; \n", "\t;\tcomment 123 ;\t\n",
		"", "; no newline at end",
	)
}

func TestPostingBasic(t *testing.T) {
	postings := []string{
		"  Assets:subacct1    1.0000",
		"\tEquity   \t -1.0000",
	}
	suffixes := []string{"\n", " \n", "\t\n", " ; comment 123 ; \n", "\t;\tcomment 123 ;\t\n"}

	t.Run("Valid", func(t *testing.T) {
		for _, posting := range postings {
			for _, suffix := range suffixes {
				assertParses(t, RulePostingBasic, posting+suffix)
			}
		}
	})

	t.Run("BadIndent", func(t *testing.T) {
		assertRejects(t, RulePostingBasic,
			"   Assets:subacct1    1.0000\n",
			" \tAssets:subacct1    1.0000\n",
			"\t Assets:subacct1    1.0000\n",
			" Assets:subacct1    1.0000\n",
			"Assets:subacct1    1.0000\n",
		)
	})

	t.Run("MissingAmount", func(t *testing.T) {
		assertRejects(t, RulePostingBasic, "  Assets\n", "  Assets 100\n", "  Assets1.0\n")
	})
}

func TestTransDescription(t *testing.T) {
	assertParses(t, RuleTransDescription,
		`"a"`, `"description"`, `" a description "`, "\"\ta description\twith tabs \"",
		`"say \"hi\""`,
	)
	assertRejects(t, RuleTransDescription, `""`, `"  "`, "\"\t\"", "\"a\nb\"", `"unterminated`)
}

func TestTransHeader(t *testing.T) {
	assertParses(t, RuleTransHeader,
		`2009-01-09 ! "Bitcoin launch date"`,
		`2009-01-09    !    "Bitcoin launch date"`,
		"2009-01-09\t!\t\"Bitcoin launch date\"",
		"2009-01-09 ! \"Bitcoin launch date\"\t",
		"2009-01-09 ! \"Bitcoin launch date\"  ",
		"2009-01-09 * \"Bitcoin launch date\"\n",
		"2009-01-09 txn \"Bitcoin launch date\" ; with comment\n",
	)
	assertRejects(t, RuleTransHeader,
		`2009-01-09 ? "Bitcoin launch date"`,
		`2009-01-09 !"Bitcoin launch date"`,
		`2009-01-09! "Bitcoin launch date"`,
		`2009-01-09 ! ""`,
	)
}

func TestTransactionBlock(t *testing.T) {
	assertParses(t, RuleTransactionBlock,
		"2009-01-09 ! \"Bitcoin launch date\" ;comment \n\tAssets    1.0000 ;posting comment\n\tEquity    -1.0000 \n",
		"2009-01-09 ! \"Bitcoin launch date\"\n\tAssets    1.0000\n  Equity    -1.0000\n",
		"2009-01-09 * \"Single\"\n  Assets    1.0000",
	)

	t.Run("NoPostings", func(t *testing.T) {
		assertRejects(t, RuleTransactionBlock,
			"2009-01-09 ! \"Bitcoin launch date\"\n",
			"2009-01-09 ! \"Bitcoin launch date\"",
		)
	})

	t.Run("PostingOrder", func(t *testing.T) {
		node, err := Parse(RuleTransactionBlock, "2009-01-09 ! \"x\"\n\tAssets    1.0000\n\tEquity    -1.0000\n")
		assert.NoError(t, err)

		var accounts []string
		for _, c := range node.Children {
			if c.Rule == RulePostingBasic {
				accounts = append(accounts, c.Child(RuleAccountDescriptor).Text)
			}
		}
		assert.Equal(t, []string{"Assets", "Equity"}, accounts)
	})
}

func TestDirectives(t *testing.T) {
	assertParses(t, RuleDirectiveOpen,
		"2001-09-11 open assets\n",
		"2001-09-11 open assets:cash\n",
		"2001-09-11 open Assets1:cash2:3petty ; comment\n",
	)
	assertParses(t, RuleDirectiveClose, "2001-09-11 close assets\n", "2001-09-11 close assets:cash")
	assertParses(t, RuleDirectiveCommodity, "2001-09-11 commodity USD\n", "1792-01-01 commodity USD ; US Dollar\n", "2001-09-11 commodity VACHR\n")
	assertParses(t, RuleBalanceDirective,
		"2001-09-11 balance assets 123.456 USD\n",
		"2001-09-11 balance assets1:2cash -0.456 USD\n",
	)

	assertRejects(t, RuleDirectiveOpen, "2001-09-11 open 1assets\n", "2001-09-11 opened assets\n", "2001-09-11 open\n")
	assertRejects(t, RuleDirectiveCommodity, "2001-09-11 thing USD\n", "2001-09-11 commodity usd\n")
	assertRejects(t, RuleBalanceDirective, "2001-09-11 balance assets 123 USD\n", "2001-09-11 balance assets 1.0\n")
}

func TestCurrency(t *testing.T) {
	assertParses(t, RuleCurrency, "USD", "A", "VACHR", "BRK.B", "C'A", "X_Y-Z", "ABCDEFGHIJKLMNOPQRSTUVWX")
	assertRejects(t, RuleCurrency, "usd", "1USD", "USD-", "ABCDEFGHIJKLMNOPQRSTUVWXY", "")
}

func TestOptionDirective(t *testing.T) {
	assertParses(t, RuleOptionDirective,
		`option "title" "Household"`+"\n",
		`option "operating_currency" "USD" ; main`+"\n",
		`option "empty" ""`,
	)
	assertRejects(t, RuleOptionDirective, `option "title"`+"\n", `option title "x"`+"\n")
}

func TestLedger(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		node, err := Parse(RuleLedger, "")
		assert.NoError(t, err)
		assert.Equal(t, 1, len(node.Children))
		assert.Equal(t, RuleEOI, node.Children[0].Rule)
	})

	t.Run("CommentsAndHeadings", func(t *testing.T) {
		input := "; comment\n* Accounts\n;; section\n\n1792-01-01 commodity USD ; US Dollar\n"
		node, err := Parse(RuleLedger, input)
		assert.NoError(t, err)

		var rules []Rule
		for _, c := range node.Children {
			rules = append(rules, c.Rule)
		}
		assert.Equal(t, []Rule{
			RuleCommentOrNewline,
			RuleHeading,
			RuleCommentOrNewline,
			RuleEmptyLine,
			RuleDirectiveCommodity,
			RuleEOI,
		}, rules)
	})

	t.Run("CRLF", func(t *testing.T) {
		input := "2001-09-11 open assets:cash\r\n\r\n2009-01-09 * \"x\"\r\n  assets:cash    1.00\r\n"
		_, err := Parse(RuleLedger, input)
		assert.NoError(t, err)
	})

	t.Run("Mixed", func(t *testing.T) {
		input := `option "title" "Test"
2001-09-11 open assets:cash
2001-09-11 open equity

2009-01-09 ! "Bitcoin launch date"
	assets:cash    1.0000
	equity    -1.0000

2010-01-01 balance assets:cash 1.0000 BTC
2011-01-01 close assets:cash
`
		node, err := Parse(RuleLedger, input)
		assert.NoError(t, err)
		assert.Equal(t, input, node.Text)
	})
}
