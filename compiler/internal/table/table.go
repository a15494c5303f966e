// Package table implements a persistent, lexically scoped association
// from symbols to arbitrary values, in the style of the teacher's
// check/scope.go but without mutating the parent on insert.
package table

import "github.com/tigerlang/tigerc/compiler/internal/symbol"

// Table is an immutable node in a chain of bindings. The zero value,
// obtained via Empty, has no bindings.
type Table struct {
	parent *Table
	sym    symbol.Symbol
	val    any
}

// Empty returns a Table with no bindings.
func Empty() *Table { return nil }

// Insert returns a new Table extending t with sym -> val. t itself is
// left untouched, so callers holding a reference to t still see the
// environment as it was before the call.
func (t *Table) Insert(sym symbol.Symbol, val any) *Table {
	return &Table{parent: t, sym: sym, val: val}
}

// Lookup walks the chain from the most recent binding to the oldest,
// returning the first match.
func (t *Table) Lookup(sym symbol.Symbol) (any, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.sym == sym {
			return cur.val, true
		}
	}
	return nil, false
}

// Entry is one symbol/value pair as returned by Entries.
type Entry struct {
	Sym symbol.Symbol
	Val any
}

// Entries walks the chain from most recent to oldest, returning one
// Entry per symbol currently visible — a later Insert of the same
// symbol shadows an earlier one, exactly as Lookup resolves it. Only
// the CLI's debug dump commands need whole-environment enumeration;
// the checker itself only ever does point lookups.
func (t *Table) Entries() []Entry {
	seen := map[symbol.Symbol]bool{}
	var out []Entry
	for cur := t; cur != nil; cur = cur.parent {
		if seen[cur.sym] {
			continue
		}
		seen[cur.sym] = true
		out = append(out, Entry{Sym: cur.sym, Val: cur.val})
	}
	return out
}
