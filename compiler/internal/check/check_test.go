package check

import (
	"testing"

	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/diag"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
	"github.com/tigerlang/tigerc/compiler/internal/types"
)

// Scenario 1: let type a = b  type b = a in 0 end
func TestCyclicAliasStillTypeChecksTheBody(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.TypeDec{Types: []ast.Typedec{
				{Name: ast.Name{Sym: names.Intern("a")}, Body: &ast.NameTy{Sym: names.Intern("b")}},
				{Name: ast.Name{Sym: names.Intern("b")}, Body: &ast.NameTy{Sym: names.Intern("a")}},
			}},
		},
		Body: &ast.IntExp{Value: 0},
	}

	res := CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.CyclicTypeDec {
		t.Fatalf("want exactly one CyclicTypeDec, got %+v", sink.Diagnostics)
	}
	if sink.Diagnostics[0].Payload["cycle"] != "a, b" {
		t.Errorf("cycle payload = %q", sink.Diagnostics[0].Payload["cycle"])
	}
	if res.Type.Actual() != types.IntTy {
		t.Errorf("program type = %v, want INT", res.Type.Actual())
	}
}

// Scenario 2: let type list = { hd: int, tl: list } var l : list := nil in l end
func TestRecursiveRecordAcceptsNilInit(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	listSym := names.Intern("list")
	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.TypeDec{Types: []ast.Typedec{
				{Name: ast.Name{Sym: listSym}, Body: &ast.RecordTy{Fields: []ast.Field{
					{Name: ast.Name{Sym: names.Intern("hd")}, Type: names.Intern("int")},
					{Name: ast.Name{Sym: names.Intern("tl")}, Type: listSym},
				}}},
			}},
			&ast.VarDec{
				Name: ast.Name{Sym: names.Intern("l")},
				Type: &listSym,
				Init: &ast.NilExp{},
			},
		},
		Body: &ast.VarExp{Var: &ast.SimpleVar{Sym: names.Intern("l")}},
	}

	res := CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %+v", sink.Diagnostics)
	}
	if res.Type.Actual().Tag != types.Record {
		t.Errorf("program type = %v, want RECORD", res.Type.Actual())
	}
}

// Scenario 3: let var x : int := "hi" in x end
func TestVarDeclAnnotationMismatch(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	intSym := names.Intern("int")
	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.VarDec{
				Name: ast.Name{Sym: names.Intern("x")},
				Type: &intSym,
				Init: &ast.StringExp{Value: "hi"},
			},
		},
		Body: &ast.VarExp{Var: &ast.SimpleVar{Sym: names.Intern("x")}},
	}

	res := CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.AssignmentMismatch {
		t.Fatalf("want exactly one AssignmentMismatch, got %+v", sink.Diagnostics)
	}
	p := sink.Diagnostics[0].Payload
	if p["actual"] != "string" || p["expected"] != "int" {
		t.Errorf("payload = %+v", p)
	}
	if res.Type.Actual() != types.IntTy {
		t.Errorf("program type = %v, want INT", res.Type.Actual())
	}
}

// Scenario 4: let function f(x: int): int = f(x) in f(3) end
func TestMutualRecursionSingleFunction(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	fSym := names.Intern("f")
	xSym := names.Intern("x")
	resultName := ast.Name{Sym: names.Intern("int")}

	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.FunctionDec{Funs: []ast.FunDec{
				{
					Name:   ast.Name{Sym: fSym},
					Params: []ast.Field{{Name: ast.Name{Sym: xSym}, Type: names.Intern("int")}},
					Result: &resultName,
					Body: &ast.CallExp{
						Func: fSym,
						Args: []ast.Exp{&ast.VarExp{Var: &ast.SimpleVar{Sym: xSym}}},
					},
				},
			}},
		},
		Body: &ast.CallExp{Func: fSym, Args: []ast.Exp{&ast.IntExp{Value: 3}}},
	}

	res := CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %+v", sink.Diagnostics)
	}
	if res.Type.Actual() != types.IntTy {
		t.Errorf("program type = %v, want INT", res.Type.Actual())
	}
}

// Scenario 5: let function f(x: int, x: int) = () in () end
func TestDuplicateParameterNameIsArgumentRedefined(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	xSym := names.Intern("x")
	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.FunctionDec{Funs: []ast.FunDec{
				{
					Name: ast.Name{Sym: names.Intern("f")},
					Params: []ast.Field{
						{Name: ast.Name{Sym: xSym}, Type: names.Intern("int")},
						{Name: ast.Name{Sym: xSym}, Type: names.Intern("int")},
					},
					Body: &ast.SeqExp{},
				},
			}},
		},
		Body: &ast.SeqExp{},
	}

	CheckProgram(body, names, sink)

	var found *diag.Diagnostic
	for i := range sink.Diagnostics {
		if sink.Diagnostics[i].Kind == diag.ArgumentRedefined {
			found = &sink.Diagnostics[i]
		}
	}
	if found == nil {
		t.Fatalf("want an ArgumentRedefined diagnostic, got %+v", sink.Diagnostics)
	}
	if found.Payload["function"] != "f" || found.Payload["argument"] != "x" {
		t.Errorf("payload = %+v", found.Payload)
	}
}

// Scenario 6: if 1 then "a" else 2
func TestIfBranchMismatch(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	body := &ast.IfExp{
		Test: &ast.IntExp{Value: 1},
		Then: &ast.StringExp{Value: "a"},
		Else: &ast.IntExp{Value: 2},
	}

	res := CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.IfBranchMismatch {
		t.Fatalf("want exactly one IfBranchMismatch, got %+v", sink.Diagnostics)
	}
	if types.WellTyped(res.Type) {
		t.Errorf("program type should be TOP, got %v", res.Type.Actual())
	}
}

// Scenario 7: for i := 0 to 10 do break
func TestBreakInsideForIsLegal(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	body := &ast.ForExp{
		Var:  ast.Name{Sym: names.Intern("i")},
		Lo:   &ast.IntExp{Value: 0},
		Hi:   &ast.IntExp{Value: 10},
		Body: &ast.BreakExp{},
	}

	res := CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %+v", sink.Diagnostics)
	}
	if res.Type.Actual() != types.UnitTy {
		t.Errorf("program type = %v, want UNIT", res.Type.Actual())
	}
}

// Scenario 8: while 1 do (i := i + 1; break); break
func TestBreakOutsideLoopIsIllegal(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	iSym := names.Intern("i")
	whileLoop := &ast.WhileExp{
		Test: &ast.IntExp{Value: 1},
		Body: &ast.SeqExp{Entries: []ast.SeqEntry{
			{Exp: &ast.AssignExp{
				Var: &ast.SimpleVar{Sym: iSym},
				Exp: &ast.OpExp{Left: &ast.VarExp{Var: &ast.SimpleVar{Sym: iSym}}, Oper: ast.Plus, Right: &ast.IntExp{Value: 1}},
			}},
			{Exp: &ast.BreakExp{}},
		}},
	}

	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.VarDec{Name: ast.Name{Sym: iSym}, Init: &ast.IntExp{Value: 0}},
		},
		Body: &ast.SeqExp{Entries: []ast.SeqEntry{
			{Exp: whileLoop},
			{Exp: &ast.BreakExp{}},
		}},
	}

	CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.IllegalBreak {
		t.Fatalf("want exactly one IllegalBreak, got %+v", sink.Diagnostics)
	}
}

// Scenario 9: let type arr = array of int var a : arr := arr[3] of 0 in a[1] := "x" end
func TestArrayElementAssignmentMismatch(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	arrSym := names.Intern("arr")
	aSym := names.Intern("a")

	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.TypeDec{Types: []ast.Typedec{
				{Name: ast.Name{Sym: arrSym}, Body: &ast.ArrayTy{Sym: names.Intern("int")}},
			}},
			&ast.VarDec{
				Name: ast.Name{Sym: aSym},
				Type: &arrSym,
				Init: &ast.ArrayExp{Type: arrSym, Size: &ast.IntExp{Value: 3}, Init: &ast.IntExp{Value: 0}},
			},
		},
		Body: &ast.AssignExp{
			Var: &ast.SubscriptVar{Base: &ast.SimpleVar{Sym: aSym}, Index: &ast.IntExp{Value: 1}},
			Exp: &ast.StringExp{Value: "x"},
		},
	}

	CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.AssignmentMismatch {
		t.Fatalf("want exactly one AssignmentMismatch, got %+v", sink.Diagnostics)
	}
	p := sink.Diagnostics[0].Payload
	if p["actual"] != "string" || p["expected"] != "int" {
		t.Errorf("payload = %+v", p)
	}
}

// §8.1 universal properties, spot-checked against the checker rather
// than the bare lattice (types_test.go already covers the lattice
// itself in isolation).
func TestUndefinedVariableReportsTopAndNeverPanics(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	body := &ast.VarExp{Var: &ast.SimpleVar{Sym: names.Intern("nowhere")}}
	res := CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.UndefinedVar {
		t.Fatalf("want exactly one UndefinedVar, got %+v", sink.Diagnostics)
	}
	if types.WellTyped(res.Type) {
		t.Errorf("want TOP, got %v", res.Type.Actual())
	}
}

// SPEC_FULL.md §3.3: an unused let-bound variable is reported, but a
// name prefixed with "_" is exempt.
func TestUnusedVariableWarning(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.VarDec{Name: ast.Name{Sym: names.Intern("unused")}, Init: &ast.IntExp{Value: 1}},
			&ast.VarDec{Name: ast.Name{Sym: names.Intern("_ignored")}, Init: &ast.IntExp{Value: 2}},
		},
		Body: &ast.IntExp{Value: 0},
	}

	CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.UnusedVariable {
		t.Fatalf("want exactly one UnusedVariable, got %+v", sink.Diagnostics)
	}
	if sink.Diagnostics[0].Payload["name"] != "unused" {
		t.Errorf("payload = %+v", sink.Diagnostics[0].Payload)
	}
}

// A let var that's only ever assigned, never read, is still unused.
func TestAssignOnlyVariableIsStillUnused(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	xSym := names.Intern("x")
	body := &ast.LetExp{
		Decs: []ast.Dec{
			&ast.VarDec{Name: ast.Name{Sym: xSym}, Init: &ast.IntExp{Value: 1}},
		},
		Body: &ast.AssignExp{Var: &ast.SimpleVar{Sym: xSym}, Exp: &ast.IntExp{Value: 2}},
	}

	CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.UnusedVariable {
		t.Fatalf("want exactly one UnusedVariable, got %+v", sink.Diagnostics)
	}
}

// SPEC_FULL.md §3.3: a statement following an unconditional break in
// the same sequence is unreachable.
func TestUnreachableAfterBreakWarning(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	body := &ast.ForExp{
		Var: ast.Name{Sym: names.Intern("i")},
		Lo:  &ast.IntExp{Value: 0},
		Hi:  &ast.IntExp{Value: 10},
		Body: &ast.SeqExp{Entries: []ast.SeqEntry{
			{Exp: &ast.BreakExp{}},
			{Exp: &ast.IntExp{Value: 99}},
		}},
	}

	CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Kind != diag.UnreachableAfterBreak {
		t.Fatalf("want exactly one UnreachableAfterBreak, got %+v", sink.Diagnostics)
	}
}

func TestTopOperandDoesNotCascade(t *testing.T) {
	names := symbol.NewTable()
	sink := &diag.Collector{}

	// nowhere + 1: the left operand is already TOP (UndefinedVar), so
	// the operator rule must not also emit OperandMismatch.
	body := &ast.OpExp{
		Left:  &ast.VarExp{Var: &ast.SimpleVar{Sym: names.Intern("nowhere")}},
		Oper:  ast.Plus,
		Right: &ast.IntExp{Value: 1},
	}
	CheckProgram(body, names, sink)

	if len(sink.Diagnostics) != 1 {
		t.Fatalf("want exactly one diagnostic (the root cause), got %+v", sink.Diagnostics)
	}
	if sink.Diagnostics[0].Kind != diag.UndefinedVar {
		t.Errorf("want UndefinedVar, got %v", sink.Diagnostics[0].Kind)
	}
}
