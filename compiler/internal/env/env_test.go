package env

import (
	"testing"

	"github.com/tigerlang/tigerc/compiler/internal/symbol"
	"github.com/tigerlang/tigerc/compiler/internal/types"
)

func TestBaseEnvironmentPreloadsPrimitives(t *testing.T) {
	syms := symbol.NewTable()
	venv, tenv := Base(syms)

	intTy, ok := tenv.Lookup(syms.Intern("int"))
	if !ok || intTy != types.IntTy {
		t.Fatal("base type environment must bind int")
	}
	if _, ok := tenv.Lookup(syms.Intern("string")); !ok {
		t.Fatal("base type environment must bind string")
	}

	printFn, ok := venv.LookupFun(syms.Intern("print"))
	if !ok {
		t.Fatal("base value environment must bind print")
	}
	if len(printFn.Formals) != 1 || printFn.Formals[0] != types.StringTy {
		t.Errorf("print formals = %v, want [string]", printFn.Formals)
	}
	if printFn.Result != types.UnitTy {
		t.Errorf("print result = %v, want unit", printFn.Result)
	}
}

func TestEnvironmentIsolation(t *testing.T) {
	syms := symbol.NewTable()
	venv, _ := Base(syms)
	x := syms.Intern("x")

	extended := venv.Insert(x, &VarEntry{Type: types.IntTy})
	if _, ok := venv.LookupVar(x); ok {
		t.Error("inserting into an extended environment must not mutate the parent")
	}
	if _, ok := extended.LookupVar(x); !ok {
		t.Error("the extended environment should see the new binding")
	}
}
