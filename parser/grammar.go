package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxCurrencyLength bounds the length of a commodity symbol.
const maxCurrencyLength = 24

// entryPoints maps every rule to the function that matches it. Any rule may
// be used as the start rule of Parse.
var entryPoints = [NumRules]func(*parser) bool{
	RuleLedger:               (*parser).ledger,
	RuleEmptyLine:            (*parser).emptyLine,
	RuleCommentOrNewline:     (*parser).commentOrNewline,
	RuleComment:              (*parser).comment,
	RuleHeading:              (*parser).heading,
	RuleOptionDirective:      (*parser).optionDirective,
	RuleStringLiteral:        (*parser).stringLiteral,
	RuleDirectiveOpen:        (*parser).directiveOpen,
	RuleDirectiveClose:       (*parser).directiveClose,
	RuleDirectiveCommodity:   (*parser).directiveCommodity,
	RuleBalanceDirective:     (*parser).balanceDirective,
	RuleCurrency:             (*parser).currency,
	RuleTransactionBlock:     (*parser).transactionBlock,
	RuleTransHeader:          (*parser).transHeader,
	RuleTransAnnotation:      (*parser).transAnnotation,
	RuleTransDescription:     (*parser).transDescription,
	RuleTransDescriptionText: (*parser).transDescriptionText,
	RulePostingBasic:         (*parser).postingBasic,
	RulePostingIndent:        (*parser).postingIndent,
	RuleAccountDescriptor:    (*parser).accountDescriptor,
	RuleTopLevelAcct:         (*parser).topLevelAcct,
	RuleSubAcct:              (*parser).subAcct,
	RuleAcctSeparator:        (*parser).acctSeparator,
	RuleDecimalValue:         (*parser).decimalValue,
	RuleDate:                 (*parser).date,
	RuleWhitespace:           (*parser).whitespace,
	RuleEOI:                  (*parser).endOfInput,
}

// ledger = (empty_line | comment_or_newline | heading | option_directive |
//
//	directive_open | directive_close | directive_commodity |
//	balance_directive | transaction_block)* EOI
func (p *parser) ledger() bool {
	return p.rule(RuleLedger, func() bool {
		p.zeroOrMore(func() bool {
			return p.emptyLine() ||
				p.commentOrNewline() ||
				p.heading() ||
				p.optionDirective() ||
				p.directiveOpen() ||
				p.directiveClose() ||
				p.directiveCommodity() ||
				p.balanceDirective() ||
				p.transactionBlock()
		})
		return p.endOfInput()
	})
}

func (p *parser) endOfInput() bool {
	return p.rule(RuleEOI, p.eoi)
}

// WHITESPACE = (" " | "\t")+
func (p *parser) whitespace() bool {
	return p.rule(RuleWhitespace, func() bool {
		start := p.pos
		for p.pos < len(p.src) && isBlank(p.src[p.pos]) {
			p.pos++
		}
		if p.pos == start {
			p.fail()
			return false
		}
		return true
	})
}

// empty_line = WHITESPACE? newline
func (p *parser) emptyLine() bool {
	return p.rule(RuleEmptyLine, func() bool {
		p.optional(p.whitespace)
		return p.newline()
	})
}

// comment = ";" (!newline ANY)*
func (p *parser) comment() bool {
	return p.rule(RuleComment, func() bool {
		if !p.byte(';') {
			return false
		}
		p.skipLine()
		return true
	})
}

// comment_or_newline = WHITESPACE? comment? (newline | EOI)
func (p *parser) commentOrNewline() bool {
	return p.rule(RuleCommentOrNewline, func() bool {
		p.optional(p.whitespace)
		p.optional(p.comment)
		return p.newline() || p.eoi()
	})
}

// heading = "*"+ WHITESPACE (!newline ANY)* (newline | EOI)
func (p *parser) heading() bool {
	return p.rule(RuleHeading, func() bool {
		if !p.byte('*') {
			return false
		}
		for p.pos < len(p.src) && p.src[p.pos] == '*' {
			p.pos++
		}
		if !p.whitespace() {
			return false
		}
		p.skipLine()
		return p.newline() || p.eoi()
	})
}

// option_directive = "option" WHITESPACE string_literal WHITESPACE string_literal comment_or_newline
func (p *parser) optionDirective() bool {
	return p.rule(RuleOptionDirective, func() bool {
		return p.literal("option") &&
			p.whitespace() &&
			p.stringLiteral() &&
			p.whitespace() &&
			p.stringLiteral() &&
			p.commentOrNewline()
	})
}

// string_literal = "\"" (escape | !("\"" | newline) ANY)* "\""
func (p *parser) stringLiteral() bool {
	return p.rule(RuleStringLiteral, func() bool {
		if !p.byte('"') {
			return false
		}
		p.quotedText()
		return p.byte('"')
	})
}

// directive_open = date WHITESPACE "open" WHITESPACE account_descriptor comment_or_newline
func (p *parser) directiveOpen() bool {
	return p.rule(RuleDirectiveOpen, func() bool {
		return p.datedKeyword("open") &&
			p.accountDescriptor() &&
			p.commentOrNewline()
	})
}

// directive_close = date WHITESPACE "close" WHITESPACE account_descriptor comment_or_newline
func (p *parser) directiveClose() bool {
	return p.rule(RuleDirectiveClose, func() bool {
		return p.datedKeyword("close") &&
			p.accountDescriptor() &&
			p.commentOrNewline()
	})
}

// directive_commodity = date WHITESPACE "commodity" WHITESPACE currency comment_or_newline
func (p *parser) directiveCommodity() bool {
	return p.rule(RuleDirectiveCommodity, func() bool {
		return p.datedKeyword("commodity") &&
			p.currency() &&
			p.commentOrNewline()
	})
}

// balance_directive = date WHITESPACE "balance" WHITESPACE account_descriptor
//
//	WHITESPACE decimal_value WHITESPACE currency comment_or_newline
func (p *parser) balanceDirective() bool {
	return p.rule(RuleBalanceDirective, func() bool {
		return p.datedKeyword("balance") &&
			p.accountDescriptor() &&
			p.whitespace() &&
			p.decimalValue() &&
			p.whitespace() &&
			p.currency() &&
			p.commentOrNewline()
	})
}

// datedKeyword matches the "date WHITESPACE keyword WHITESPACE" prefix shared
// by all directives.
func (p *parser) datedKeyword(keyword string) bool {
	return p.date() &&
		p.whitespace() &&
		p.literal(keyword) &&
		p.whitespace()
}

// currency = [A-Z] [A-Z0-9'._-]* with a letter or digit as the last character
func (p *parser) currency() bool {
	return p.rule(RuleCurrency, func() bool {
		start := p.pos
		if !p.byteRange('A', 'Z') {
			return false
		}
		end := p.pos
		for i := p.pos; i < len(p.src) && isCurrencyChar(p.src[i]); i++ {
			if isUpper(p.src[i]) || isDigit(p.src[i]) {
				end = i + 1
			}
		}
		if end-start > maxCurrencyLength {
			p.pos = start + maxCurrencyLength
			p.fail()
			return false
		}
		p.pos = end
		return true
	})
}

// transaction_block = trans_header posting_basic+
func (p *parser) transactionBlock() bool {
	return p.rule(RuleTransactionBlock, func() bool {
		return p.transHeader() && p.oneOrMore(p.postingBasic)
	})
}

// trans_header = date WHITESPACE trans_annotation WHITESPACE trans_description comment_or_newline
func (p *parser) transHeader() bool {
	return p.rule(RuleTransHeader, func() bool {
		return p.date() &&
			p.whitespace() &&
			p.transAnnotation() &&
			p.whitespace() &&
			p.transDescription() &&
			p.commentOrNewline()
	})
}

// trans_annotation = "txn" | "*" | "!"
func (p *parser) transAnnotation() bool {
	return p.rule(RuleTransAnnotation, func() bool {
		return p.literal("txn") || p.byte('*') || p.byte('!')
	})
}

// trans_description = "\"" trans_description_text "\""
func (p *parser) transDescription() bool {
	return p.rule(RuleTransDescription, func() bool {
		return p.byte('"') && p.transDescriptionText() && p.byte('"')
	})
}

// trans_description_text is the quoted text of a description. It must contain
// at least one character that is not whitespace.
func (p *parser) transDescriptionText() bool {
	return p.rule(RuleTransDescriptionText, func() bool {
		start := p.pos
		p.quotedText()
		if strings.TrimLeft(p.src[start:p.pos], " \t") == "" {
			p.pos = start
			p.fail()
			return false
		}
		return true
	})
}

// posting_indent = "  " | "\t"
func (p *parser) postingIndent() bool {
	return p.rule(RulePostingIndent, func() bool {
		return p.literal("  ") || p.byte('\t')
	})
}

// posting_basic = posting_indent account_descriptor WHITESPACE decimal_value comment_or_newline
func (p *parser) postingBasic() bool {
	return p.rule(RulePostingBasic, func() bool {
		return p.postingIndent() &&
			p.accountDescriptor() &&
			p.whitespace() &&
			p.decimalValue() &&
			p.commentOrNewline()
	})
}

// account_descriptor = top_level_acct (acct_separator sub_acct)* !acct_separator
func (p *parser) accountDescriptor() bool {
	return p.rule(RuleAccountDescriptor, func() bool {
		if !p.topLevelAcct() {
			return false
		}
		p.zeroOrMore(func() bool {
			return p.acctSeparator() && p.subAcct()
		})
		return p.not(p.acctSeparator)
	})
}

// top_level_acct = LETTER (LETTER | DIGIT)*
func (p *parser) topLevelAcct() bool {
	return p.rule(RuleTopLevelAcct, func() bool {
		if !p.runeIf(unicode.IsLetter) {
			return false
		}
		p.skipRunes(isAlnum)
		return true
	})
}

// sub_acct = (LETTER | DIGIT)+
func (p *parser) subAcct() bool {
	return p.rule(RuleSubAcct, func() bool {
		if !p.runeIf(isAlnum) {
			return false
		}
		p.skipRunes(isAlnum)
		return true
	})
}

// acct_separator = ":"
func (p *parser) acctSeparator() bool {
	return p.rule(RuleAcctSeparator, func() bool {
		return p.byte(':')
	})
}

// decimal_value = "-"? DIGIT+ "." DIGIT+
func (p *parser) decimalValue() bool {
	return p.rule(RuleDecimalValue, func() bool {
		p.optional(func() bool { return p.byte('-') })
		return p.digitRun() && p.byte('.') && p.digitRun()
	})
}

// iso8601_date_extended = year "-" month "-" day
//
// The year is four digits other than 0000, the month is 01 to 12 and the day
// is 01 to 31. Whether the day exists in that month is not checked here.
func (p *parser) date() bool {
	return p.rule(RuleDate, func() bool {
		start := p.pos
		if !p.digits(4) {
			return false
		}
		if p.src[start:p.pos] == "0000" {
			p.pos = start
			p.fail()
			return false
		}
		return p.byte('-') && p.month() && p.byte('-') && p.day()
	})
}

// month = "0" [1-9] | "1" [0-2]
func (p *parser) month() bool {
	return p.group(func() bool { return p.byte('0') && p.byteRange('1', '9') }) ||
		p.group(func() bool { return p.byte('1') && p.byteRange('0', '2') })
}

// day = "0" [1-9] | [12] [0-9] | "3" [01]
func (p *parser) day() bool {
	return p.group(func() bool { return p.byte('0') && p.byteRange('1', '9') }) ||
		p.group(func() bool { return p.byteRange('1', '2') && p.byteRange('0', '9') }) ||
		p.group(func() bool { return p.byte('3') && p.byteRange('0', '1') })
}

// quotedText consumes the body of a double-quoted string up to, but not
// including, the closing quote or the end of the line.
func (p *parser) quotedText() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '"' || c == '\n' || c == '\r':
			return
		case c == '\\' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '"' || p.src[p.pos+1] == '\\'):
			p.pos += 2
		default:
			p.pos++
		}
	}
}

// skipLine advances to the next line terminator or the end of input.
func (p *parser) skipLine() {
	for p.pos < len(p.src) && !p.atNewline() {
		p.pos++
	}
}

func (p *parser) skipRunes(pred func(rune) bool) {
	for p.pos < len(p.src) {
		r, size := decodeRune(p.src[p.pos:])
		if !pred(r) {
			return
		}
		p.pos += size
	}
}

func decodeRune(s string) (rune, int) {
	if s[0] < utf8.RuneSelf {
		return rune(s[0]), 1
	}
	return utf8.DecodeRuneInString(s)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isCurrencyChar(c byte) bool {
	return isUpper(c) || isDigit(c) || c == '\'' || c == '.' || c == '_' || c == '-'
}
