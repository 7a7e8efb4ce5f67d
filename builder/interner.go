package builder

import "strings"

// Interner deduplicates strings so that every occurrence of an account
// segment or currency symbol in a ledger shares one backing string.
type Interner struct {
	pool map[string]string
}

// NewInterner creates an interner with room for capacity distinct strings.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical instance of s.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	s = strings.Clone(s)
	i.pool[s] = s
	return s
}

// Size returns the number of distinct strings in the pool.
func (i *Interner) Size() int {
	return len(i.pool)
}

// Reset empties the pool.
func (i *Interner) Reset() {
	clear(i.pool)
}
