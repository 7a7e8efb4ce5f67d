package ast

import "github.com/shopspring/decimal"

// Directive is an administrative entry of the ledger. Every directive is dated.
type Directive interface {
	Entry

	// DirectiveDate returns the date the directive takes effect.
	DirectiveDate() Date

	directive()
}

// Open declares the opening of an account.
//
// Example:
//
//	2001-09-11 open assets:cash
type Open struct {
	Date    Date
	Account RawAccountDescriptor
	Pinfo   ParserInfo
}

var _ Directive = Open{}

func (o Open) Position() FilePosition { return o.Pinfo.Position }
func (o Open) Kind() string           { return KindOpen }
func (o Open) DirectiveDate() Date    { return o.Date }
func (Open) entry()                   {}
func (Open) directive()               {}

// Close declares the closing of an account.
//
// Example:
//
//	2001-09-11 close assets
type Close struct {
	Date    Date
	Account RawAccountDescriptor
	Pinfo   ParserInfo
}

var _ Directive = Close{}

func (c Close) Position() FilePosition { return c.Pinfo.Position }
func (c Close) Kind() string           { return KindClose }
func (c Close) DirectiveDate() Date    { return c.Date }
func (Close) entry()                   {}
func (Close) directive()               {}

// Commodity declares a currency or commodity symbol.
//
// Example:
//
//	1792-01-01 commodity USD ; US Dollar
type Commodity struct {
	Date   Date
	Symbol string
	Pinfo  ParserInfo
}

var _ Directive = Commodity{}

func (c Commodity) Position() FilePosition { return c.Pinfo.Position }
func (c Commodity) Kind() string           { return KindCommodity }
func (c Commodity) DirectiveDate() Date    { return c.Date }
func (Commodity) entry()                   {}
func (Commodity) directive()               {}

// Balance asserts the amount of a currency held by an account at the start of
// the given date. The assertion is recorded, not checked.
//
// Example:
//
//	2001-09-11 balance assets1:2cash -0.456 USD
type Balance struct {
	Date     Date
	Account  RawAccountDescriptor
	Amount   decimal.Decimal
	Currency string
	Pinfo    ParserInfo
}

var _ Directive = Balance{}

func (b Balance) Position() FilePosition { return b.Pinfo.Position }
func (b Balance) Kind() string           { return KindBalance }
func (b Balance) DirectiveDate() Date    { return b.Date }
func (Balance) entry()                   {}
func (Balance) directive()               {}

// Option sets a named ledger-wide option. Options are undated and are not
// directives.
//
// Example:
//
//	option "title" "Household ledger"
type Option struct {
	Name  string
	Value string
	Pinfo ParserInfo
}

func (o Option) Position() FilePosition { return o.Pinfo.Position }
func (o Option) Kind() string           { return KindOption }
func (Option) entry()                   {}
