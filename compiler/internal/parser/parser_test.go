package parser

import (
	"testing"

	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
)

func TestOperatorPrecedence(t *testing.T) {
	names := symbol.NewTable()
	p := New("1 + 2 * 3", names)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	plus, ok := prog.Body.(*ast.OpExp)
	if !ok || plus.Oper != ast.Plus {
		t.Fatalf("top level not '+', got %#v", prog.Body)
	}
	times, ok := plus.Right.(*ast.OpExp)
	if !ok || times.Oper != ast.Times {
		t.Fatalf("right child not '*', got %#v", plus.Right)
	}
}

func TestAssignmentAndSeq(t *testing.T) {
	names := symbol.NewTable()
	p := New("(x := (x + 1) * 2; x)", names)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	seq, ok := prog.Body.(*ast.SeqExp)
	if !ok || len(seq.Entries) != 2 {
		t.Fatalf("expected a 2-entry seq, got %#v", prog.Body)
	}
	asg, ok := seq.Entries[0].Exp.(*ast.AssignExp)
	if !ok {
		t.Fatalf("entry 0 not an assignment, got %#v", seq.Entries[0].Exp)
	}
	mul, ok := asg.Exp.(*ast.OpExp)
	if !ok || mul.Oper != ast.Times {
		t.Fatalf("assigned expr not '*', got %#v", asg.Exp)
	}
}

func TestArrayVsSubscriptDisambiguation(t *testing.T) {
	names := symbol.NewTable()

	p1 := New("intArray [10] of 0", names)
	prog1, err := p1.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, ok := prog1.Body.(*ast.ArrayExp); !ok {
		t.Fatalf("expected ArrayExp, got %#v", prog1.Body)
	}

	p2 := New("a[10]", names)
	prog2, err := p2.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ve, ok := prog2.Body.(*ast.VarExp)
	if !ok {
		t.Fatalf("expected VarExp, got %#v", prog2.Body)
	}
	if _, ok := ve.Var.(*ast.SubscriptVar); !ok {
		t.Fatalf("expected SubscriptVar, got %#v", ve.Var)
	}
}

func TestRecordLiteralAndFieldAccess(t *testing.T) {
	names := symbol.NewTable()

	p1 := New(`point { x = 1, y = 2 }`, names)
	prog1, err := p1.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	rec, ok := prog1.Body.(*ast.RecordExp)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("expected a 2-field RecordExp, got %#v", prog1.Body)
	}

	p2 := New("p.x", names)
	prog2, err := p2.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ve, ok := prog2.Body.(*ast.VarExp)
	if !ok {
		t.Fatalf("expected VarExp, got %#v", prog2.Body)
	}
	if _, ok := ve.Var.(*ast.FieldVar); !ok {
		t.Fatalf("expected FieldVar, got %#v", ve.Var)
	}
}

func TestLetWithTypeAndFunctionBlocks(t *testing.T) {
	names := symbol.NewTable()
	src := `let
  type tree = { key: int, left: tree, right: tree }
  var t : tree := nil
  function depth(n: tree): int = 0
in
  depth(t)
end`
	p := New(src, names)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	let, ok := prog.Body.(*ast.LetExp)
	if !ok {
		t.Fatalf("expected LetExp, got %#v", prog.Body)
	}
	if len(let.Decs) != 3 {
		t.Fatalf("expected 3 decl blocks, got %d", len(let.Decs))
	}
	if _, ok := let.Decs[0].(*ast.TypeDec); !ok {
		t.Fatalf("decl 0 not a TypeDec block")
	}
	if _, ok := let.Decs[1].(*ast.VarDec); !ok {
		t.Fatalf("decl 1 not a VarDec")
	}
	if _, ok := let.Decs[2].(*ast.FunctionDec); !ok {
		t.Fatalf("decl 2 not a FunctionDec block")
	}
}

func TestAndOrDesugarToIf(t *testing.T) {
	names := symbol.NewTable()
	p := New("1 & 2", names)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ifExp, ok := prog.Body.(*ast.IfExp)
	if !ok || ifExp.Else == nil {
		t.Fatalf("expected `&` to desugar to an if/else, got %#v", prog.Body)
	}
}
