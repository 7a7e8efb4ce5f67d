package parser

// Rule identifies a grammar rule. Every node of a parse tree is tagged with
// the rule that matched it.
type Rule uint8

const (
	RuleLedger Rule = iota
	RuleEmptyLine
	RuleCommentOrNewline
	RuleComment
	RuleHeading
	RuleOptionDirective
	RuleStringLiteral
	RuleDirectiveOpen
	RuleDirectiveClose
	RuleDirectiveCommodity
	RuleBalanceDirective
	RuleCurrency
	RuleTransactionBlock
	RuleTransHeader
	RuleTransAnnotation
	RuleTransDescription
	RuleTransDescriptionText
	RulePostingBasic
	RulePostingIndent
	RuleAccountDescriptor
	RuleTopLevelAcct
	RuleSubAcct
	RuleAcctSeparator
	RuleDecimalValue
	RuleDate
	RuleWhitespace
	RuleEOI

	// NumRules is the number of defined rules. It is not a rule itself.
	NumRules
)

var ruleNames = [NumRules]string{
	RuleLedger:               "ledger",
	RuleEmptyLine:            "empty_line",
	RuleCommentOrNewline:     "comment_or_newline",
	RuleComment:              "comment",
	RuleHeading:              "heading",
	RuleOptionDirective:      "option_directive",
	RuleStringLiteral:        "string_literal",
	RuleDirectiveOpen:        "directive_open",
	RuleDirectiveClose:       "directive_close",
	RuleDirectiveCommodity:   "directive_commodity",
	RuleBalanceDirective:     "balance_directive",
	RuleCurrency:             "currency",
	RuleTransactionBlock:     "transaction_block",
	RuleTransHeader:          "trans_header",
	RuleTransAnnotation:      "trans_annotation",
	RuleTransDescription:     "trans_description",
	RuleTransDescriptionText: "trans_description_text",
	RulePostingBasic:         "posting_basic",
	RulePostingIndent:        "posting_indent",
	RuleAccountDescriptor:    "account_descriptor",
	RuleTopLevelAcct:         "top_level_acct",
	RuleSubAcct:              "sub_acct",
	RuleAcctSeparator:        "acct_separator",
	RuleDecimalValue:         "decimal_value",
	RuleDate:                 "iso8601_date_extended",
	RuleWhitespace:           "WHITESPACE",
	RuleEOI:                  "EOI",
}

func (r Rule) String() string {
	if r < NumRules {
		return ruleNames[r]
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// silent reports whether failures inside r are attributed to the enclosing rule.
func (r Rule) silent() bool {
	return r == RuleWhitespace
}

// Rules returns every rule identity in declaration order.
func Rules() []Rule {
	rules := make([]Rule, NumRules)
	for i := range rules {
		rules[i] = Rule(i)
	}
	return rules
}

// ParseRule resolves a rule by its display name.
func ParseRule(name string) (Rule, bool) {
	for i, n := range ruleNames {
		if n == name {
			return Rule(i), true
		}
	}
	return 0, false
}
