// Package symbol interns identifier strings into small comparable handles.
package symbol

// Symbol is an interned identifier. Two Symbols are equal iff the
// strings they were interned from are equal.
type Symbol int

const noSymbol Symbol = -1

// Table interns strings into Symbols and back.
type Table struct {
	byName []string
	index  map[string]Symbol
}

// NewTable returns an empty interning table.
func NewTable() *Table {
	return &Table{index: map[string]Symbol{}}
}

// Intern returns the Symbol for name, creating one if this is the first
// time name has been seen.
func (t *Table) Intern(name string) Symbol {
	if s, ok := t.index[name]; ok {
		return s
	}
	s := Symbol(len(t.byName))
	t.byName = append(t.byName, name)
	t.index[name] = s
	return s
}

// Name returns the string a Symbol was interned from.
func (t *Table) Name(s Symbol) string {
	if int(s) < 0 || int(s) >= len(t.byName) {
		return "<invalid-symbol>"
	}
	return t.byName[s]
}

// Lookup returns the Symbol for name without interning it.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.index[name]
	return s, ok
}
