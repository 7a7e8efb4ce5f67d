package ast

import "github.com/shopspring/decimal"

// RawPosting is a single leg of a transaction: an account and the signed
// amount moved into it.
//
// Example:
//
//	  Assets:subacct1    1.0000 ; posting comment
type RawPosting struct {
	Account RawAccountDescriptor
	Value   decimal.Decimal
	Comment string // empty when the line has no comment
	Pinfo   ParserInfo
}

// RawTransaction is a dated, annotated transaction and its postings in the
// order they were written. Postings are not required to balance.
//
// Example:
//
//	2009-01-09 ! "Bitcoin launch date" ;comment
//		Assets    1.0000
//		Equity    -1.0000
type RawTransaction struct {
	Date        Date
	Annotation  Annotation
	Description string
	Postings    []RawPosting
	Comment     string
	Pinfo       ParserInfo
}

func (t RawTransaction) Position() FilePosition { return t.Pinfo.Position }
func (t RawTransaction) Kind() string           { return KindTransaction }
func (RawTransaction) entry()                   {}

// Sum returns the arithmetic sum of the posting values.
func (t RawTransaction) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range t.Postings {
		sum = sum.Add(p.Value)
	}
	return sum
}
