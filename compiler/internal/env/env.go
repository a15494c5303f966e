// Package env implements the value and type environments threaded
// through the checker: persistent, lexically scoped maps from interned
// symbols to variable/function entries or to types.
package env

import (
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
	"github.com/tigerlang/tigerc/compiler/internal/table"
	"github.com/tigerlang/tigerc/compiler/internal/types"
)

// VarEntry is a value-environment binding for a variable. Used is
// mutated in place through the shared pointer as the checker reads
// the variable, even though ValueEnv itself is persistent — the same
// split the teacher's scope.go draws between its mutable varInfo and
// its otherwise scoped lookup chain.
type VarEntry struct {
	Type *types.Ty
	Used bool
}

// FunEntry is a value-environment binding for a function.
type FunEntry struct {
	Formals []*types.Ty
	Result  *types.Ty
}

// ValueEnv maps symbols to *VarEntry or *FunEntry.
type ValueEnv struct{ t *table.Table }

// TypeEnv maps symbols to *types.Ty.
type TypeEnv struct{ t *table.Table }

func (v ValueEnv) Insert(s symbol.Symbol, entry any) ValueEnv {
	return ValueEnv{t: v.t.Insert(s, entry)}
}

func (v ValueEnv) LookupVar(s symbol.Symbol) (*VarEntry, bool) {
	val, ok := v.t.Lookup(s)
	if !ok {
		return nil, false
	}
	ve, ok := val.(*VarEntry)
	return ve, ok
}

func (v ValueEnv) LookupFun(s symbol.Symbol) (*FunEntry, bool) {
	val, ok := v.t.Lookup(s)
	if !ok {
		return nil, false
	}
	fe, ok := val.(*FunEntry)
	return fe, ok
}

// Lookup returns whichever of VarEntry/FunEntry is bound to s, as an
// untyped value, for callers (like transVar's SimpleVar rule) that
// need to distinguish which kind was found rather than look up one
// specific kind.
func (v ValueEnv) Lookup(s symbol.Symbol) (any, bool) {
	return v.t.Lookup(s)
}

// ValueBinding is one symbol/value pair, as returned by Entries.
type ValueBinding struct {
	Sym symbol.Symbol
	Val any // *VarEntry or *FunEntry
}

// Entries lists every value binding currently visible in v, for the
// CLI's `dump-types` debug command; the checker itself never needs to
// enumerate a whole environment.
func (v ValueEnv) Entries() []ValueBinding {
	var out []ValueBinding
	for _, e := range v.t.Entries() {
		out = append(out, ValueBinding{Sym: e.Sym, Val: e.Val})
	}
	return out
}

func (t TypeEnv) Insert(s symbol.Symbol, ty *types.Ty) TypeEnv {
	return TypeEnv{t: t.t.Insert(s, ty)}
}

func (t TypeEnv) Lookup(s symbol.Symbol) (*types.Ty, bool) {
	val, ok := t.t.Lookup(s)
	if !ok {
		return nil, false
	}
	ty, ok := val.(*types.Ty)
	return ty, ok
}

// TypeBinding is one symbol/type pair, as returned by Entries.
type TypeBinding struct {
	Sym  symbol.Symbol
	Type *types.Ty
}

// Entries lists every type binding currently visible in t, for the
// CLI's `dump-types` debug command; the checker itself never needs to
// enumerate a whole environment.
func (t TypeEnv) Entries() []TypeBinding {
	var out []TypeBinding
	for _, e := range t.t.Entries() {
		if ty, ok := e.Val.(*types.Ty); ok {
			out = append(out, TypeBinding{Sym: e.Sym, Type: ty})
		}
	}
	return out
}

// builtins lists the names spec.md §3.2 names as the base environment's
// built-in procedures, with the formal/result types a Tiger standard
// library gives them.
var builtins = []struct {
	name    string
	formals []*types.Ty
	result  *types.Ty
}{
	{"print", []*types.Ty{types.StringTy}, types.UnitTy},
	{"flush", nil, types.UnitTy},
	{"getchar", nil, types.StringTy},
	{"ord", []*types.Ty{types.StringTy}, types.IntTy},
	{"chr", []*types.Ty{types.IntTy}, types.StringTy},
	{"size", []*types.Ty{types.StringTy}, types.IntTy},
	{"substring", []*types.Ty{types.StringTy, types.IntTy, types.IntTy}, types.StringTy},
	{"concat", []*types.Ty{types.StringTy, types.StringTy}, types.StringTy},
	{"not", []*types.Ty{types.IntTy}, types.IntTy},
	{"exit", []*types.Ty{types.IntTy}, types.UnitTy},
}

// Base returns the preloaded type and value environments: INT and
// STRING bound in the type environment, and the built-in procedures
// bound in the value environment, per spec.md §3.2.
func Base(symbols *symbol.Table) (ValueEnv, TypeEnv) {
	var tenv TypeEnv
	tenv = tenv.Insert(symbols.Intern("int"), types.IntTy)
	tenv = tenv.Insert(symbols.Intern("string"), types.StringTy)

	var venv ValueEnv
	for _, b := range builtins {
		venv = venv.Insert(symbols.Intern(b.name), &FunEntry{Formals: b.formals, Result: b.result})
	}
	return venv, tenv
}
