package vm

import "miniml/internal/core"

// Environment is a finite, snapshot-style mapping from names to values
// (§3). Apart from the GC rewriting closure heap indices in place, it is
// never mutated after installation on the heap; Extend always returns a
// fresh copy, which is what lets the GC treat every
// environment as owned by at most one "primary" closure at a time.
type Environment map[core.Name]Value

// Extend returns a copy of e with name bound to v, leaving e itself
// untouched.
func (e Environment) Extend(name core.Name, v Value) Environment {
	next := make(Environment, len(e)+1)
	for k, val := range e {
		next[k] = val
	}
	next[name] = v
	return next
}
