package check

import (
	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/diag"
	"github.com/tigerlang/tigerc/compiler/internal/env"
	"github.com/tigerlang/tigerc/compiler/internal/types"
)

// transVar is the lvalue checker (spec.md §4.3's Var rules).
func (c *checker) transVar(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, v ast.Var) *types.Ty {
	switch vv := v.(type) {
	case *ast.SimpleVar:
		bound, ok := venv.Lookup(vv.Sym)
		if !ok {
			return c.errorf(diag.UndefinedVar, vv.At, map[string]string{"sym": c.names.Name(vv.Sym)})
		}
		ve, ok := bound.(*env.VarEntry)
		if !ok {
			return c.errorf(diag.NameBoundToFunction, vv.At, map[string]string{"sym": c.names.Name(vv.Sym)})
		}
		ve.Used = true
		return ve.Type

	case *ast.FieldVar:
		baseTy := c.transVar(venv, tenv, inLoop, vv.Base)
		if !types.WellTyped(baseTy) {
			return types.TopTy
		}
		rec := baseTy.Actual()
		if rec.Tag != types.Record {
			return c.errorf(diag.NonRecordAccess, vv.At, map[string]string{
				"field":  c.names.Name(vv.Sym),
				"actual": describe(rec),
			})
		}
		for _, f := range rec.Fields {
			if f.Name == vv.Sym {
				return f.Type
			}
		}
		return c.errorf(diag.NoSuchField, vv.At, map[string]string{"field": c.names.Name(vv.Sym)})

	case *ast.SubscriptVar:
		baseTy := c.transVar(venv, tenv, inLoop, vv.Base)
		idxTy := c.transExp(venv, tenv, inLoop, vv.Index)
		if !types.Subtype(idxTy, types.IntTy) && types.WellTyped(idxTy) {
			c.errorf(diag.NonIntSubscript, vv.Index.ExpPos(), map[string]string{"actual": describe(idxTy)})
		}
		if !types.WellTyped(baseTy) {
			// base is already reported; don't pile on a second
			// diagnostic for the same root cause.
			return types.TopTy
		}
		arr := baseTy.Actual()
		if arr.Tag != types.Array {
			return c.errorf(diag.NonArrayAccess, vv.At, map[string]string{"actual": describe(arr)})
		}
		return arr.Elem

	default:
		return types.TopTy
	}
}

// assignTargetType resolves a bare assignment target without marking
// it read, so `x := ...` alone never clears x's unused-variable flag.
func (c *checker) assignTargetType(venv env.ValueEnv, vv *ast.SimpleVar) *types.Ty {
	bound, ok := venv.Lookup(vv.Sym)
	if !ok {
		return c.errorf(diag.UndefinedVar, vv.At, map[string]string{"sym": c.names.Name(vv.Sym)})
	}
	ve, ok := bound.(*env.VarEntry)
	if !ok {
		return c.errorf(diag.NameBoundToFunction, vv.At, map[string]string{"sym": c.names.Name(vv.Sym)})
	}
	return ve.Type
}
