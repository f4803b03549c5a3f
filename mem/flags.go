package mem

import (
	"fmt"
	"strings"
)

// Flags is a set of allocation-request modifiers packed into a uint32.
// The zero value means "no modifiers" and is the identity for Or. Flags
// values are never mutated in place; every combinator returns a new value.
type Flags uint32

const (
	// FlagZero asks the backend to return memory whose every byte reads
	// as zero.
	FlagZero Flags = 1 << iota

	// FlagNoWait forbids the backend from blocking to satisfy the
	// request. A backend that would have to wait fails with
	// ErrOutOfMemory instead.
	FlagNoWait

	// FlagAccount charges the allocation against an accounted pool.
	FlagAccount

	// FlagHighPriority lets the backend dip into emergency reserves.
	FlagHighPriority
)

// Or returns the union of f and g.
func (f Flags) Or(g Flags) Flags {
	return f | g
}

// And returns the intersection of f and g.
func (f Flags) And(g Flags) Flags {
	return f & g
}

// Not returns the fixed-width complement of f. Reserved bits flip too:
// Not of the empty set is the all-ones value, not the union of the named
// constants.
func (f Flags) Not() Flags {
	return ^f
}

// Contains reports whether every bit set in g is also set in f. This is
// the subset test, not equality; it holds trivially for the empty set and
// is well defined when f carries unrelated bits.
func (f Flags) Contains(g Flags) bool {
	return f&g == g
}

// IsEmpty reports whether no modifier is requested.
func (f Flags) IsEmpty() bool {
	return f == 0
}

var flagNames = []struct {
	bit  Flags
	name string
}{
	{FlagZero, "zero"},
	{FlagNoWait, "nowait"},
	{FlagAccount, "account"},
	{FlagHighPriority, "highprio"},
}

// String renders the set bits by name, unknown bits in hex.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	rest := f
	parts := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if rest.Contains(fn.bit) {
			parts = append(parts, fn.name)
			rest &^= fn.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
