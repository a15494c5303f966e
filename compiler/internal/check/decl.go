package check

import (
	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/diag"
	"github.com/tigerlang/tigerc/compiler/internal/env"
	"github.com/tigerlang/tigerc/compiler/internal/resolve"
	"github.com/tigerlang/tigerc/compiler/internal/types"
)

// transDec dispatches on the three declaration variants (spec.md
// §4.2), returning the extended { venv, tenv } pair.
func (c *checker) transDec(venv env.ValueEnv, tenv env.TypeEnv, d ast.Dec) (env.ValueEnv, env.TypeEnv) {
	switch dd := d.(type) {
	case *ast.VarDec:
		return c.transVarDec(venv, tenv, dd)
	case *ast.TypeDec:
		return venv, resolve.TypeDecs(dd, tenv, c.names, c.sink)
	case *ast.FunctionDec:
		return c.transFunctionDec(venv, tenv, dd), tenv
	default:
		return venv, tenv
	}
}

func (c *checker) transVarDec(venv env.ValueEnv, tenv env.TypeEnv, d *ast.VarDec) (env.ValueEnv, env.TypeEnv) {
	actual := c.transExp(venv, tenv, false, d.Init)

	var declared *types.Ty
	if d.Type != nil {
		declared = c.resolveTypeAnnotation(tenv, *d.Type, d.At)
	} else {
		declared = actual
	}

	if declared.Actual().Tag == types.Nil {
		c.errorf(diag.NilInitialization, d.At, map[string]string{"name": c.names.Name(d.Name.Sym)})
	} else if !types.Subtype(actual, declared) && types.WellTyped(actual) {
		c.errorf(diag.AssignmentMismatch, d.At, map[string]string{
			"actual":   describe(actual),
			"expected": describe(declared),
		})
	}

	entry := &env.VarEntry{Type: declared}
	c.trackUnused(entry, c.names.Name(d.Name.Sym), d.At)
	return venv.Insert(d.Name.Sym, entry), tenv
}

func (c *checker) transFunctionDec(venv env.ValueEnv, tenv env.TypeEnv, block *ast.FunctionDec) env.ValueEnv {
	type header struct {
		fun     *ast.FunDec
		formals []*types.Ty
		result  *types.Ty
	}
	headers := make([]header, 0, len(block.Funs))

	for i := range block.Funs {
		fd := &block.Funs[i]

		formals := make([]*types.Ty, 0, len(fd.Params))
		paramSeen := map[string]bool{}
		for _, p := range fd.Params {
			if paramSeen[c.names.Name(p.Name.Sym)] {
				c.warn(diag.ArgumentRedefined, p.Name.At, map[string]string{
					"function": c.names.Name(fd.Name.Sym),
					"argument": c.names.Name(p.Name.Sym),
				})
			}
			paramSeen[c.names.Name(p.Name.Sym)] = true
			formals = append(formals, c.resolveTypeAnnotation(tenv, p.Type, p.Name.At))
		}

		result := types.UnitTy
		if fd.Result != nil {
			result = c.resolveTypeAnnotation(tenv, fd.Result.Sym, fd.Result.At)
		}

		headers = append(headers, header{fun: fd, formals: formals, result: result})
		venv = venv.Insert(fd.Name.Sym, &env.FunEntry{Formals: formals, Result: result})
	}

	for _, h := range headers {
		bodyVenv := venv
		for i, p := range h.fun.Params {
			entry := &env.VarEntry{Type: h.formals[i]}
			c.trackUnused(entry, c.names.Name(p.Name.Sym), p.Name.At)
			bodyVenv = bodyVenv.Insert(p.Name.Sym, entry)
		}
		bodyTy := c.transExp(bodyVenv, tenv, false, h.fun.Body)

		if h.fun.Result == nil {
			if !types.Subtype(bodyTy, types.UnitTy) && types.WellTyped(bodyTy) {
				c.errorf(diag.NonUnitProcedure, h.fun.Body.ExpPos(), map[string]string{
					"name":   c.names.Name(h.fun.Name.Sym),
					"actual": describe(bodyTy),
				})
			}
		} else if !types.Subtype(bodyTy, h.result) && types.WellTyped(bodyTy) {
			c.errorf(diag.TypeMismatch, h.fun.Body.ExpPos(), map[string]string{
				"name":     c.names.Name(h.fun.Name.Sym),
				"actual":   describe(bodyTy),
				"expected": describe(h.result),
			})
		}
	}

	return venv
}
