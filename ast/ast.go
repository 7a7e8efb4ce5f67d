// Package ast declares the records produced by parsing a plain-text ledger.
//
// Every record is a value: once the builder has constructed a transaction,
// posting, account descriptor or directive it is never mutated again. Each
// record carries a ParserInfo with the position it was read from so later
// consumers can point diagnostics back at the source.
//
// A ledger is a sequence of entries. The Entry interface is implemented by
// RawTransaction, by every Directive variant and by Option.
package ast

// Entry kinds as reported by Entry.Kind.
const (
	KindTransaction = "transaction"
	KindOpen        = "open"
	KindClose       = "close"
	KindCommodity   = "commodity"
	KindBalance     = "balance"
	KindOption      = "option"
)

// Entry is a single top-level item of a ledger, in document order.
type Entry interface {
	// Position returns where the entry starts in the source text.
	Position() FilePosition

	// Kind returns one of the Kind* constants.
	Kind() string

	entry()
}

var (
	_ Entry = RawTransaction{}
	_ Entry = Option{}
)
