// Package ledger assembles parsed entries into an ordered in-memory ledger.
//
// Parse is the single entry point: it runs the parser with the whole-ledger
// rule, hands the tree to the builder and appends every entry to a fresh
// ParsedLedger in document order. Any error aborts the call and is returned
// as is, so callers can still inspect *parser.SyntaxError and
// *builder.StructuralError with errors.As. No partial ledger is returned.
//
// Example usage:
//
//	l, err := ledger.Parse(ctx, text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, txn := range l.Transactions() {
//	    fmt.Println(txn.Date, txn.Description)
//	}
package ledger

import (
	"encoding/json"

	"github.com/robinvdvleuten/ptaledger/ast"
)

// ParsedLedger is the ordered sequence of entries read from one document.
// Order is the order of appearance, never sorted by date. Entries are only
// added while parsing; the read methods return copies.
type ParsedLedger struct {
	entries []ast.Entry
}

func (l *ParsedLedger) append(e ast.Entry) {
	l.entries = append(l.entries, e)
}

// Len returns the number of entries.
func (l *ParsedLedger) Len() int {
	return len(l.entries)
}

// Entries returns all entries in document order.
func (l *ParsedLedger) Entries() []ast.Entry {
	entries := make([]ast.Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Transactions returns the transactions in document order.
func (l *ParsedLedger) Transactions() []ast.RawTransaction {
	var txns []ast.RawTransaction
	for _, e := range l.entries {
		if txn, ok := e.(ast.RawTransaction); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

// Directives returns the open, close, commodity and balance directives in
// document order.
func (l *ParsedLedger) Directives() []ast.Directive {
	var directives []ast.Directive
	for _, e := range l.entries {
		if d, ok := e.(ast.Directive); ok {
			directives = append(directives, d)
		}
	}
	return directives
}

// Options returns the option entries in document order.
func (l *ParsedLedger) Options() []ast.Option {
	var options []ast.Option
	for _, e := range l.entries {
		if o, ok := e.(ast.Option); ok {
			options = append(options, o)
		}
	}
	return options
}

// Option returns the value of the last option named name.
func (l *ParsedLedger) Option(name string) (string, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if o, ok := l.entries[i].(ast.Option); ok && o.Name == name {
			return o.Value, true
		}
	}
	return "", false
}

// Accounts returns every distinct account referenced by an entry, in the
// order they first appear. Each descriptor carries the position of its first
// occurrence.
func (l *ParsedLedger) Accounts() []ast.RawAccountDescriptor {
	seen := make(map[string]struct{})
	var accounts []ast.RawAccountDescriptor
	add := func(a ast.RawAccountDescriptor) {
		key := a.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		accounts = append(accounts, a)
	}

	for _, e := range l.entries {
		switch e := e.(type) {
		case ast.RawTransaction:
			for _, p := range e.Postings {
				add(p.Account)
			}
		case ast.Open:
			add(e.Account)
		case ast.Close:
			add(e.Account)
		case ast.Balance:
			add(e.Account)
		}
	}
	return accounts
}

// entryRecord tags an entry with its kind for serialization.
type entryRecord struct {
	Kind  string    `json:"kind" yaml:"kind"`
	Entry ast.Entry `json:"entry" yaml:"entry"`
}

func (l *ParsedLedger) records() []entryRecord {
	records := make([]entryRecord, len(l.entries))
	for i, e := range l.entries {
		records[i] = entryRecord{Kind: e.Kind(), Entry: e}
	}
	return records
}

// MarshalJSON renders the ledger as a list of {"kind", "entry"} objects.
func (l *ParsedLedger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.records())
}

// MarshalYAML implements yaml.Marshaler with the same shape as MarshalJSON.
func (l *ParsedLedger) MarshalYAML() (any, error) {
	return l.records(), nil
}
