// Package ptaledger parses plain-text double-entry accounting ledgers.
//
// A ledger is a sequence of dated transactions with indented postings, and
// of open, close, commodity and balance directives:
//
//	2001-09-11 open assets:cash
//
//	2009-01-09 ! "Bitcoin launch date"
//		assets:cash    1.0000
//		equity    -1.0000
//
// ParseLedger is the convenience entry point. The ledger package exposes the
// same operation with a context and options, and the loader package reads
// ledgers from files.
package ptaledger

import (
	"context"

	"github.com/robinvdvleuten/ptaledger/ledger"
)

// ParseLedger parses text into a ParsedLedger. It returns a
// *parser.SyntaxError when the text does not match the grammar and a
// *builder.StructuralError when a matched construct cannot be converted.
func ParseLedger(text string) (*ledger.ParsedLedger, error) {
	return ledger.Parse(context.Background(), text)
}
