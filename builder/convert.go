package builder

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ptaledger/ast"
	"github.com/robinvdvleuten/ptaledger/parser"
)

// Decimal converts a decimal_value node. The text is parsed again even though
// the grammar already restricts it, so a conversion failure is reported
// instead of silently producing zero.
func Decimal(n *parser.Node) (decimal.Decimal, error) {
	if err := expectRule(n, parser.RuleDecimalValue); err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(n.Text)
	if err != nil {
		return decimal.Decimal{}, newStructuralError(n, err, "invalid amount value %q", n.Text)
	}
	return d, nil
}

// Date converts an iso8601_date_extended node. Dates that pass the grammar but
// do not exist, such as 2023-02-31, are structural errors.
func Date(n *parser.Node) (ast.Date, error) {
	if err := expectRule(n, parser.RuleDate); err != nil {
		return ast.Date{}, err
	}
	d, err := ast.NewDate(n.Text)
	if err != nil {
		return ast.Date{}, newStructuralError(n, err, "invalid calendar date %q", n.Text)
	}
	return d, nil
}

// Account converts an account_descriptor node without interning.
func Account(n *parser.Node) (ast.RawAccountDescriptor, error) {
	return New().account(n)
}

// Transaction converts a transaction_block or a bare trans_header node. A
// bare header yields a transaction without postings.
func (b *Builder) Transaction(n *parser.Node) (ast.RawTransaction, error) {
	var (
		header   *parser.Node
		postings []ast.RawPosting
	)
	switch n.Rule {
	case parser.RuleTransHeader:
		header = n
	case parser.RuleTransactionBlock:
		for _, c := range n.Children {
			switch c.Rule {
			case parser.RuleTransHeader:
				header = c
			case parser.RulePostingBasic:
				p, err := b.posting(c)
				if err != nil {
					return ast.RawTransaction{}, err
				}
				postings = append(postings, p)
			default:
				if actionFor(c.Rule) != actionIgnore {
					return ast.RawTransaction{}, newStructuralError(c, nil, "unexpected %s in transaction", c.Rule)
				}
			}
		}
	default:
		return ast.RawTransaction{}, newStructuralError(n, nil, "expected %s, got %s", parser.RuleTransactionBlock, n.Rule)
	}
	if header == nil {
		return ast.RawTransaction{}, newStructuralError(n, nil, "transaction without header")
	}

	var (
		date        ast.Date
		seenDate    bool
		annotation  ast.Annotation
		description string
		seenDesc    bool
		comment     string
	)
	for _, c := range header.Children {
		var err error
		switch c.Rule {
		case parser.RuleDate:
			date, err = Date(c)
			seenDate = true
		case parser.RuleTransAnnotation:
			annotation = ast.Annotation(c.Text)
			if !annotation.Valid() {
				err = newStructuralError(c, nil, "unknown annotation %q", c.Text)
			}
		case parser.RuleTransDescription:
			description, err = descriptionText(c)
			seenDesc = true
		case parser.RuleCommentOrNewline:
			comment = commentText(c)
		case parser.RuleWhitespace:
		default:
			err = newStructuralError(c, nil, "unexpected %s in transaction header", c.Rule)
		}
		if err != nil {
			return ast.RawTransaction{}, err
		}
	}
	if !seenDate || annotation == "" || !seenDesc {
		return ast.RawTransaction{}, newStructuralError(header, nil, "incomplete transaction header")
	}

	return ast.RawTransaction{
		Date:        date,
		Annotation:  annotation,
		Description: description,
		Postings:    postings,
		Comment:     comment,
		Pinfo:       pinfo(n),
	}, nil
}

func (b *Builder) posting(n *parser.Node) (ast.RawPosting, error) {
	var (
		account    ast.RawAccountDescriptor
		value      decimal.Decimal
		hasAccount bool
		hasValue   bool
		comment    string
	)
	for _, c := range n.Children {
		var err error
		switch c.Rule {
		case parser.RuleAccountDescriptor:
			account, err = b.account(c)
			hasAccount = true
		case parser.RuleDecimalValue:
			value, err = Decimal(c)
			hasValue = true
		case parser.RuleCommentOrNewline:
			comment = commentText(c)
		case parser.RulePostingIndent, parser.RuleWhitespace:
		default:
			err = newStructuralError(c, nil, "unexpected %s in posting", c.Rule)
		}
		if err != nil {
			return ast.RawPosting{}, err
		}
	}
	if !hasAccount || !hasValue {
		return ast.RawPosting{}, newStructuralError(n, nil, "incomplete posting")
	}
	return ast.RawPosting{
		Account: account,
		Value:   value,
		Comment: comment,
		Pinfo:   pinfo(n),
	}, nil
}

func (b *Builder) account(n *parser.Node) (ast.RawAccountDescriptor, error) {
	if err := expectRule(n, parser.RuleAccountDescriptor); err != nil {
		return ast.RawAccountDescriptor{}, err
	}
	path := make([]string, 0, 4)
	for _, c := range n.Children {
		switch c.Rule {
		case parser.RuleTopLevelAcct, parser.RuleSubAcct:
			path = append(path, b.interner.Intern(c.Text))
		case parser.RuleAcctSeparator:
		default:
			return ast.RawAccountDescriptor{}, newStructuralError(c, nil, "unexpected %s in account", c.Rule)
		}
	}
	if len(path) == 0 {
		return ast.RawAccountDescriptor{}, newStructuralError(n, nil, "empty account")
	}
	return ast.RawAccountDescriptor{Path: path, Pinfo: pinfo(n)}, nil
}

// directiveParts holds the converted operands shared by all directives.
type directiveParts struct {
	date     ast.Date
	seenDate bool
	account  *ast.RawAccountDescriptor
	amount   *decimal.Decimal
	currency string
}

func (b *Builder) directiveParts(n *parser.Node) (directiveParts, error) {
	var parts directiveParts
	for _, c := range n.Children {
		var err error
		switch c.Rule {
		case parser.RuleDate:
			parts.date, err = Date(c)
			parts.seenDate = true
		case parser.RuleAccountDescriptor:
			var acct ast.RawAccountDescriptor
			acct, err = b.account(c)
			parts.account = &acct
		case parser.RuleDecimalValue:
			var d decimal.Decimal
			d, err = Decimal(c)
			parts.amount = &d
		case parser.RuleCurrency:
			parts.currency = b.interner.Intern(c.Text)
		case parser.RuleWhitespace, parser.RuleCommentOrNewline:
		default:
			err = newStructuralError(c, nil, "unexpected %s in %s", c.Rule, n.Rule)
		}
		if err != nil {
			return directiveParts{}, err
		}
	}
	if !parts.seenDate {
		return directiveParts{}, newStructuralError(n, nil, "%s without date", n.Rule)
	}
	return parts, nil
}

func (b *Builder) open(n *parser.Node) (ast.Open, error) {
	parts, err := b.directiveParts(n)
	if err != nil {
		return ast.Open{}, err
	}
	if parts.account == nil {
		return ast.Open{}, newStructuralError(n, nil, "open without account")
	}
	return ast.Open{Date: parts.date, Account: *parts.account, Pinfo: pinfo(n)}, nil
}

func (b *Builder) close(n *parser.Node) (ast.Close, error) {
	parts, err := b.directiveParts(n)
	if err != nil {
		return ast.Close{}, err
	}
	if parts.account == nil {
		return ast.Close{}, newStructuralError(n, nil, "close without account")
	}
	return ast.Close{Date: parts.date, Account: *parts.account, Pinfo: pinfo(n)}, nil
}

func (b *Builder) commodity(n *parser.Node) (ast.Commodity, error) {
	parts, err := b.directiveParts(n)
	if err != nil {
		return ast.Commodity{}, err
	}
	if parts.currency == "" {
		return ast.Commodity{}, newStructuralError(n, nil, "commodity without symbol")
	}
	return ast.Commodity{Date: parts.date, Symbol: parts.currency, Pinfo: pinfo(n)}, nil
}

func (b *Builder) balance(n *parser.Node) (ast.Balance, error) {
	parts, err := b.directiveParts(n)
	if err != nil {
		return ast.Balance{}, err
	}
	if parts.account == nil || parts.amount == nil || parts.currency == "" {
		return ast.Balance{}, newStructuralError(n, nil, "incomplete balance")
	}
	return ast.Balance{
		Date:     parts.date,
		Account:  *parts.account,
		Amount:   *parts.amount,
		Currency: parts.currency,
		Pinfo:    pinfo(n),
	}, nil
}

func (b *Builder) option(n *parser.Node) (ast.Option, error) {
	var values []string
	for _, c := range n.Children {
		switch c.Rule {
		case parser.RuleStringLiteral:
			values = append(values, unquote(c.Text))
		case parser.RuleWhitespace, parser.RuleCommentOrNewline:
		default:
			return ast.Option{}, newStructuralError(c, nil, "unexpected %s in option", c.Rule)
		}
	}
	if len(values) != 2 {
		return ast.Option{}, newStructuralError(n, nil, "option needs a name and a value, got %d strings", len(values))
	}
	return ast.Option{Name: values[0], Value: values[1], Pinfo: pinfo(n)}, nil
}

func descriptionText(n *parser.Node) (string, error) {
	text := n.Child(parser.RuleTransDescriptionText)
	if text == nil {
		return "", newStructuralError(n, nil, "description without text")
	}
	return ast.Unquote(text.Text), nil
}

// commentText returns the text after the ';' of a comment_or_newline node,
// trimmed of surrounding blanks, or "" when the line has no comment.
func commentText(n *parser.Node) string {
	c := n.Child(parser.RuleComment)
	if c == nil {
		return ""
	}
	return strings.Trim(strings.TrimPrefix(c.Text, ";"), " \t\r")
}

func unquote(literal string) string {
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		literal = literal[1 : len(literal)-1]
	}
	return ast.Unquote(literal)
}

func expectRule(n *parser.Node, want parser.Rule) error {
	if n == nil {
		return &StructuralError{Rule: want, Message: "missing " + want.String()}
	}
	if n.Rule != want {
		return newStructuralError(n, nil, "expected %s, got %s", want, n.Rule)
	}
	return nil
}

func pinfo(n *parser.Node) ast.ParserInfo {
	return ast.ParserInfo{Position: n.Pos}
}
