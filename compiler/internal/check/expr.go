package check

import (
	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/diag"
	"github.com/tigerlang/tigerc/compiler/internal/env"
	"github.com/tigerlang/tigerc/compiler/internal/types"
)

// transExp is the expression checker (spec.md §4.3). All subrules
// tolerate TOP: a sub-check never re-reports once an operand is
// already TOP, so one root cause does not cascade into dozens.
func (c *checker) transExp(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e ast.Exp) *types.Ty {
	switch v := e.(type) {
	case *ast.NilExp:
		return types.NilTy
	case *ast.IntExp:
		return types.IntTy
	case *ast.StringExp:
		return types.StringTy
	case *ast.VarExp:
		return c.transVar(venv, tenv, inLoop, v.Var)
	case *ast.CallExp:
		return c.transCall(venv, tenv, inLoop, v)
	case *ast.OpExp:
		return c.transOp(venv, tenv, inLoop, v)
	case *ast.RecordExp:
		return c.transRecord(venv, tenv, inLoop, v)
	case *ast.SeqExp:
		return c.transSeq(venv, tenv, inLoop, v)
	case *ast.AssignExp:
		return c.transAssign(venv, tenv, inLoop, v)
	case *ast.IfExp:
		return c.transIf(venv, tenv, inLoop, v)
	case *ast.WhileExp:
		return c.transWhile(venv, tenv, v)
	case *ast.ForExp:
		return c.transFor(venv, tenv, v)
	case *ast.LetExp:
		return c.transLet(venv, tenv, inLoop, v)
	case *ast.ArrayExp:
		return c.transArray(venv, tenv, inLoop, v)
	case *ast.BreakExp:
		if !inLoop {
			return c.errorf(diag.IllegalBreak, v.At, nil)
		}
		return types.BottomTy
	default:
		return types.TopTy
	}
}

func (c *checker) transCall(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.CallExp) *types.Ty {
	bound, ok := venv.Lookup(e.Func)
	if !ok {
		return c.errorf(diag.UndefinedFunction, e.At, map[string]string{"sym": c.names.Name(e.Func)})
	}
	fe, ok := bound.(*env.FunEntry)
	if !ok {
		return c.errorf(diag.NameBoundToVar, e.At, map[string]string{"sym": c.names.Name(e.Func)})
	}

	if len(fe.Formals) != len(e.Args) {
		c.warn(diag.ArityMismatch, e.At, map[string]string{
			"name":     c.names.Name(e.Func),
			"actual":   itoa(len(e.Args)),
			"expected": itoa(len(fe.Formals)),
		})
	}

	n := minInt(len(fe.Formals), len(e.Args))
	for i := 0; i < n; i++ {
		actual := c.transExp(venv, tenv, inLoop, e.Args[i])
		expected := fe.Formals[i]
		if !types.Subtype(actual, expected) && types.WellTyped(actual) {
			c.warn(diag.ArgumentMismatch, e.Args[i].ExpPos(), map[string]string{
				"actual":   describe(actual),
				"expected": describe(expected),
			})
		}
	}
	// Check any remaining (unmatched) args anyway so later uses of
	// their result still get reported; their types are discarded.
	for i := n; i < len(e.Args); i++ {
		c.transExp(venv, tenv, inLoop, e.Args[i])
	}

	return fe.Result
}

func (c *checker) transOp(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.OpExp) *types.Ty {
	leftTy := c.transExp(venv, tenv, inLoop, e.Left)
	rightTy := c.transExp(venv, tenv, inLoop, e.Right)

	var expected *types.Ty
	switch e.Oper {
	case ast.Eq, ast.Neq:
		expected = types.BottomTy
	default:
		expected = types.IntTy
	}

	leftJoin := types.Join(leftTy, expected)
	if leftJoin.Tag == types.Top && types.WellTyped(leftTy) {
		c.errorf(diag.OperandMismatch, e.Left.ExpPos(), map[string]string{
			"operator": e.Oper.String(),
			"actual":   describe(leftTy),
			"expected": describe(expected),
		})
	} else if actual := types.Join(leftJoin, rightTy); actual.Tag == types.Top && types.WellTyped(leftTy) && types.WellTyped(rightTy) {
		c.errorf(diag.OperandMismatch, e.Right.ExpPos(), map[string]string{
			"operator": e.Oper.String(),
			"actual":   describe(rightTy),
			"expected": describe(leftJoin),
		})
	}
	return types.IntTy
}

func (c *checker) transRecord(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.RecordExp) *types.Ty {
	declTy, ok := tenv.Lookup(e.Type)
	if !ok {
		for _, f := range e.Fields {
			c.transExp(venv, tenv, inLoop, f.Exp)
		}
		return c.errorf(diag.UnboundRecordType, e.At, map[string]string{"sym": c.names.Name(e.Type)})
	}
	rec := declTy.Actual()
	if rec.Tag != types.Record {
		for _, f := range e.Fields {
			c.transExp(venv, tenv, inLoop, f.Exp)
		}
		return c.errorf(diag.NonRecordType, e.At, map[string]string{"sym": c.names.Name(e.Type)})
	}

	byName := map[string]ast.FieldInit{}
	for _, f := range e.Fields {
		byName[c.names.Name(f.Sym.Sym)] = f
	}
	for _, decl := range rec.Fields {
		fname := c.names.Name(decl.Name)
		lit, present := byName[fname]
		if !present {
			c.errorf(diag.MissingField, e.At, map[string]string{
				"field":    fname,
				"expected": describe(decl.Type),
			})
			continue
		}
		actual := c.transExp(venv, tenv, inLoop, lit.Exp)
		if !types.Subtype(actual, decl.Type) && types.WellTyped(actual) {
			c.errorf(diag.FieldMismatch, lit.At, map[string]string{
				"field":    fname,
				"actual":   describe(actual),
				"expected": describe(decl.Type),
			})
		}
	}
	// Extra fields present in the literal but absent from the
	// declared type are intentionally left unchecked (spec.md §9).
	return rec
}

func (c *checker) transSeq(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.SeqExp) *types.Ty {
	result := types.UnitTy
	dead := false
	for _, entry := range e.Entries {
		if dead {
			c.warn(diag.UnreachableAfterBreak, entry.Exp.ExpPos(), nil)
		}
		ty := c.transExp(venv, tenv, inLoop, entry.Exp)
		if dead {
			// Still checked for its own errors, but a dead entry's
			// type must not override the BOTTOM the break already
			// established, or a later non-unit entry would falsely
			// make an enclosing for/while/procedure look non-unit.
			continue
		}
		result = ty
		if ty.Tag == types.Bottom {
			dead = true
		}
	}
	return result
}

func (c *checker) transAssign(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.AssignExp) *types.Ty {
	// A bare `name := ...` writes the variable without reading it, so
	// it alone must not satisfy the unused-variable check; only
	// FieldVar/SubscriptVar targets reach here through transVar, since
	// their base variable genuinely is read to compute the address.
	var varTy *types.Ty
	if sv, ok := e.Var.(*ast.SimpleVar); ok {
		varTy = c.assignTargetType(venv, sv)
	} else {
		varTy = c.transVar(venv, tenv, inLoop, e.Var)
	}
	valTy := c.transExp(venv, tenv, inLoop, e.Exp)
	if !types.Subtype(valTy, varTy) && types.WellTyped(varTy) && types.WellTyped(valTy) {
		c.errorf(diag.AssignmentMismatch, e.At, map[string]string{
			"actual":   describe(valTy),
			"expected": describe(varTy),
		})
	}
	return types.UnitTy
}

func (c *checker) transIf(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.IfExp) *types.Ty {
	testTy := c.transExp(venv, tenv, inLoop, e.Test)
	if !types.Subtype(testTy, types.IntTy) && types.WellTyped(testTy) {
		c.errorf(diag.ConditionMismatch, e.Test.ExpPos(), map[string]string{"actual": describe(testTy)})
	}

	thenTy := c.transExp(venv, tenv, inLoop, e.Then)
	if e.Else == nil {
		if !types.Subtype(thenTy, types.UnitTy) && types.WellTyped(thenTy) {
			c.errorf(diag.NonUnitIf, e.Then.ExpPos(), map[string]string{"actual": describe(thenTy)})
		}
		return types.UnitTy
	}

	elseTy := c.transExp(venv, tenv, inLoop, e.Else)
	result := types.Join(thenTy, elseTy)
	if result.Tag == types.Top && types.WellTyped(thenTy) && types.WellTyped(elseTy) {
		c.errorf(diag.IfBranchMismatch, e.At, map[string]string{
			"then": describe(thenTy),
			"else": describe(elseTy),
		})
	}
	return result
}

func (c *checker) transWhile(venv env.ValueEnv, tenv env.TypeEnv, e *ast.WhileExp) *types.Ty {
	testTy := c.transExp(venv, tenv, false, e.Test)
	if !types.Subtype(testTy, types.IntTy) && types.WellTyped(testTy) {
		c.errorf(diag.ConditionMismatch, e.Test.ExpPos(), map[string]string{"actual": describe(testTy)})
	}
	bodyTy := c.transExp(venv, tenv, true, e.Body)
	if !types.Subtype(bodyTy, types.UnitTy) && types.WellTyped(bodyTy) {
		c.errorf(diag.NonUnitWhile, e.Body.ExpPos(), map[string]string{"actual": describe(bodyTy)})
	}
	return types.UnitTy
}

func (c *checker) transFor(venv env.ValueEnv, tenv env.TypeEnv, e *ast.ForExp) *types.Ty {
	loTy := c.transExp(venv, tenv, false, e.Lo)
	if !types.Subtype(loTy, types.IntTy) && types.WellTyped(loTy) {
		c.errorf(diag.ForRangeMismatch, e.Lo.ExpPos(), map[string]string{"which": "lower", "actual": describe(loTy)})
	}
	hiTy := c.transExp(venv, tenv, false, e.Hi)
	if !types.Subtype(hiTy, types.IntTy) && types.WellTyped(hiTy) {
		c.errorf(diag.ForRangeMismatch, e.Hi.ExpPos(), map[string]string{"which": "upper", "actual": describe(hiTy)})
	}

	// The induction variable is bound to INT for the body. spec.md §9:
	// the checker does not forbid assigning to it (VarEntry carries no
	// read-only marker), matching the reference behavior.
	bodyVenv := venv.Insert(e.Var.Sym, &env.VarEntry{Type: types.IntTy})
	bodyTy := c.transExp(bodyVenv, tenv, true, e.Body)
	if !types.Subtype(bodyTy, types.UnitTy) && types.WellTyped(bodyTy) {
		c.errorf(diag.NonUnitFor, e.Body.ExpPos(), map[string]string{"actual": describe(bodyTy)})
	}
	return types.UnitTy
}

func (c *checker) transLet(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.LetExp) *types.Ty {
	venv, tenv = c.foldDecs(venv, tenv, e.Decs)
	return c.transExp(venv, tenv, inLoop, e.Body)
}

// foldDecs threads venv/tenv through a let's declaration list left to
// right, extending it per transDec as spec.md §4.2/§5 direct.
func (c *checker) foldDecs(venv env.ValueEnv, tenv env.TypeEnv, decs []ast.Dec) (env.ValueEnv, env.TypeEnv) {
	for _, d := range decs {
		venv, tenv = c.transDec(venv, tenv, d)
	}
	return venv, tenv
}

func (c *checker) transArray(venv env.ValueEnv, tenv env.TypeEnv, inLoop bool, e *ast.ArrayExp) *types.Ty {
	sizeTy := c.transExp(venv, tenv, inLoop, e.Size)
	if !types.Subtype(sizeTy, types.IntTy) && types.WellTyped(sizeTy) {
		c.errorf(diag.ArraySizeMismatch, e.Size.ExpPos(), map[string]string{"actual": describe(sizeTy)})
	}

	declTy := c.resolveTypeAnnotation(tenv, e.Type, e.At)
	initTy := c.transExp(venv, tenv, inLoop, e.Init)
	if !types.WellTyped(declTy) {
		return types.TopTy
	}
	arr := declTy.Actual()
	if arr.Tag != types.Array {
		if types.WellTyped(arr) {
			c.errorf(diag.NonArrayType, e.At, map[string]string{"sym": c.names.Name(e.Type), "actual": describe(arr)})
		}
		return types.TopTy
	}
	if !types.Subtype(initTy, arr.Elem) && types.WellTyped(initTy) {
		c.errorf(diag.ArrayInitMismatch, e.Init.ExpPos(), map[string]string{
			"actual":   describe(initTy),
			"expected": describe(arr.Elem),
		})
	}
	return arr
}

