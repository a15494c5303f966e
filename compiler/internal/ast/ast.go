package ast

import (
	"fmt"
	"strings"

	"github.com/tigerlang/tigerc/compiler/internal/diag"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
)

// Node is the common interface satisfied by every AST node, in the
// style of the teacher's ast.Node.
type Node interface{ node() }

// Pos is re-exported from diag so ast nodes and diagnostics speak the
// same position currency without ast depending on anything but diag.
type Pos = diag.Pos

/*** OPERATORS ***/

type Oper int

const (
	Plus Oper = iota
	Minus
	Times
	Divide
	Eq
	Neq
	Lt
	Le
	Gt
	Ge
)

func (o Oper) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Times:
		return "*"
	case Divide:
		return "/"
	case Eq:
		return "="
	case Neq:
		return "<>"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

/*** VARIABLES (lvalues) ***/

type Var interface {
	Node
	var_()
	VarPos() Pos
}

type SimpleVar struct {
	Sym symbol.Symbol
	At  Pos
}

func (*SimpleVar) node()         {}
func (*SimpleVar) var_()         {}
func (v *SimpleVar) VarPos() Pos { return v.At }

type FieldVar struct {
	Base Var
	Sym  symbol.Symbol
	At   Pos
}

func (*FieldVar) node()         {}
func (*FieldVar) var_()         {}
func (v *FieldVar) VarPos() Pos { return v.At }

type SubscriptVar struct {
	Base  Var
	Index Exp
	At    Pos
}

func (*SubscriptVar) node()         {}
func (*SubscriptVar) var_()         {}
func (v *SubscriptVar) VarPos() Pos { return v.At }

/*** EXPRESSIONS ***/

type Exp interface {
	Node
	exp()
	ExpPos() Pos
}

type NilExp struct{ At Pos }

func (*NilExp) node()         {}
func (*NilExp) exp()          {}
func (e *NilExp) ExpPos() Pos { return e.At }

type IntExp struct {
	Value int64
	At    Pos
}

func (*IntExp) node()         {}
func (*IntExp) exp()          {}
func (e *IntExp) ExpPos() Pos { return e.At }

type StringExp struct {
	Value string
	At    Pos
}

func (*StringExp) node()         {}
func (*StringExp) exp()          {}
func (e *StringExp) ExpPos() Pos { return e.At }

type VarExp struct {
	Var Var
	At  Pos
}

func (*VarExp) node()         {}
func (*VarExp) exp()          {}
func (e *VarExp) ExpPos() Pos { return e.At }

type CallExp struct {
	Func symbol.Symbol
	Args []Exp
	At   Pos
}

func (*CallExp) node()         {}
func (*CallExp) exp()          {}
func (e *CallExp) ExpPos() Pos { return e.At }

type OpExp struct {
	Left  Exp
	Oper  Oper
	Right Exp
	At    Pos
}

func (*OpExp) node()         {}
func (*OpExp) exp()          {}
func (e *OpExp) ExpPos() Pos { return e.At }

// FieldInit is one `name = exp` pair inside a record literal.
type FieldInit struct {
	Sym Name
	Exp Exp
	At  Pos
}

type RecordExp struct {
	Type   symbol.Symbol
	Fields []FieldInit
	At     Pos
}

func (*RecordExp) node()         {}
func (*RecordExp) exp()          {}
func (e *RecordExp) ExpPos() Pos { return e.At }

// SeqEntry pairs a sequenced expression with its position, so a Seq
// whose last entry has a different position than the Seq itself can
// still be traced.
type SeqEntry struct {
	Exp Exp
	At  Pos
}

type SeqExp struct {
	Entries []SeqEntry
	At      Pos
}

func (*SeqExp) node()         {}
func (*SeqExp) exp()          {}
func (e *SeqExp) ExpPos() Pos { return e.At }

type AssignExp struct {
	Var Var
	Exp Exp
	At  Pos
}

func (*AssignExp) node()         {}
func (*AssignExp) exp()          {}
func (e *AssignExp) ExpPos() Pos { return e.At }

type IfExp struct {
	Test Exp
	Then Exp
	Else Exp // nil if absent
	At   Pos
}

func (*IfExp) node()         {}
func (*IfExp) exp()          {}
func (e *IfExp) ExpPos() Pos { return e.At }

type WhileExp struct {
	Test Exp
	Body Exp
	At   Pos
}

func (*WhileExp) node()         {}
func (*WhileExp) exp()          {}
func (e *WhileExp) ExpPos() Pos { return e.At }

type ForExp struct {
	Var    Name
	Escape bool
	Lo     Exp
	Hi     Exp
	Body   Exp
	At     Pos
}

func (*ForExp) node()         {}
func (*ForExp) exp()          {}
func (e *ForExp) ExpPos() Pos { return e.At }

type LetExp struct {
	Decs []Dec
	Body Exp
	At   Pos
}

func (*LetExp) node()         {}
func (*LetExp) exp()          {}
func (e *LetExp) ExpPos() Pos { return e.At }

type ArrayExp struct {
	Type symbol.Symbol
	Size Exp
	Init Exp
	At   Pos
}

func (*ArrayExp) node()         {}
func (*ArrayExp) exp()          {}
func (e *ArrayExp) ExpPos() Pos { return e.At }

type BreakExp struct{ At Pos }

func (*BreakExp) node()         {}
func (*BreakExp) exp()          {}
func (e *BreakExp) ExpPos() Pos { return e.At }

/*** NAMES ***/

// Name carries both the interned symbol and its source position, used
// wherever a declaration introduces an identifier (formals, record
// fields, for-loop induction variables, type/function/var names).
type Name struct {
	Sym symbol.Symbol
	At  Pos
}

/*** DECLARATIONS ***/

type Dec interface {
	Node
	dec()
	DecPos() Pos
}

// Field is one (name, type) pair of a function formal or record field.
type Field struct {
	Name   Name
	Escape bool
	Type   symbol.Symbol
}

type FunDec struct {
	Name   Name
	Params []Field
	Result *Name // nil when the function has no declared result (a procedure)
	Body   Exp
}

// FunctionDec is a mutually-recursive block of one or more FunDecs,
// per spec.md §6.1's `FunctionDec([Fundec])`.
type FunctionDec struct {
	Funs []FunDec
	At   Pos
}

func (*FunctionDec) node()         {}
func (*FunctionDec) dec()          {}
func (d *FunctionDec) DecPos() Pos { return d.At }

type VarDec struct {
	Name   Name
	Escape bool
	Type   *symbol.Symbol // nil when unannotated
	Init   Exp
	At     Pos
}

func (*VarDec) node()         {}
func (*VarDec) dec()          {}
func (d *VarDec) DecPos() Pos { return d.At }

// Typedec is one `type name = body` within a TypeDec block.
type Typedec struct {
	Name Name
	Body TyBody
	At   Pos
}

type TyBody interface {
	tyBody()
}

type NameTy struct {
	Sym symbol.Symbol
	At  Pos
}

func (*NameTy) tyBody() {}

type RecordTy struct {
	Fields []Field
}

func (*RecordTy) tyBody() {}

type ArrayTy struct {
	Sym symbol.Symbol
	At  Pos
}

func (*ArrayTy) tyBody() {}

// TypeDec is a mutually-recursive block of one or more Typedecs, per
// spec.md §6.1's `TypeDec([Typedec])`.
type TypeDec struct {
	Types []Typedec
	At    Pos
}

func (*TypeDec) node()         {}
func (*TypeDec) dec()          {}
func (d *TypeDec) DecPos() Pos { return d.At }

/*** PROGRAM ***/

// Program is the parse result handed to the checker: a single
// top-level expression (spec.md's transProg takes one Exp).
type Program struct {
	Body Exp
}

/*** DUMP (pretty outline for the CLI, teacher's ast.DumpFile idiom) ***/

// DumpProgram renders a readable outline of the program for the
// `tigerc parse` debug command; names is used to recover identifier
// text from interned symbols.
func DumpProgram(p *Program, names *symbol.Table) string {
	var b strings.Builder
	dumpExp(&b, p.Body, names, 0)
	b.WriteString("\n")
	return b.String()
}

func indentInto(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpExp(b *strings.Builder, e Exp, names *symbol.Table, depth int) {
	indentInto(b, depth)
	switch v := e.(type) {
	case *NilExp:
		b.WriteString("nil")
	case *IntExp:
		fmt.Fprintf(b, "%d", v.Value)
	case *StringExp:
		fmt.Fprintf(b, "%q", v.Value)
	case *VarExp:
		dumpVar(b, v.Var, names)
	case *CallExp:
		fmt.Fprintf(b, "%s(...)", names.Name(v.Func))
	case *OpExp:
		b.WriteString("(")
		dumpExpInline(b, v.Left, names)
		fmt.Fprintf(b, " %s ", v.Oper)
		dumpExpInline(b, v.Right, names)
		b.WriteString(")")
	case *RecordExp:
		fmt.Fprintf(b, "%s{...}", names.Name(v.Type))
	case *SeqExp:
		b.WriteString("(\n")
		for _, entry := range v.Entries {
			dumpExp(b, entry.Exp, names, depth+1)
			b.WriteString("\n")
		}
		indentInto(b, depth)
		b.WriteString(")")
	case *AssignExp:
		dumpVar(b, v.Var, names)
		b.WriteString(" := ")
		dumpExpInline(b, v.Exp, names)
	case *IfExp:
		b.WriteString("if ")
		dumpExpInline(b, v.Test, names)
		b.WriteString(" then ...")
		if v.Else != nil {
			b.WriteString(" else ...")
		}
	case *WhileExp:
		b.WriteString("while ...")
	case *ForExp:
		fmt.Fprintf(b, "for %s := ... to ... do ...", names.Name(v.Var.Sym))
	case *LetExp:
		fmt.Fprintf(b, "let (%d decs) in ... end", len(v.Decs))
	case *ArrayExp:
		fmt.Fprintf(b, "%s[...] of ...", names.Name(v.Type))
	case *BreakExp:
		b.WriteString("break")
	default:
		b.WriteString("<exp>")
	}
}

func dumpExpInline(b *strings.Builder, e Exp, names *symbol.Table) {
	var sub strings.Builder
	dumpExp(&sub, e, names, 0)
	b.WriteString(sub.String())
}

func dumpVar(b *strings.Builder, v Var, names *symbol.Table) {
	switch vv := v.(type) {
	case *SimpleVar:
		b.WriteString(names.Name(vv.Sym))
	case *FieldVar:
		dumpVar(b, vv.Base, names)
		fmt.Fprintf(b, ".%s", names.Name(vv.Sym))
	case *SubscriptVar:
		dumpVar(b, vv.Base, names)
		b.WriteString("[...]")
	}
}
