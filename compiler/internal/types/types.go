// Package types implements the type lattice consumed by the checker:
// the tagged union of Tiger types, subtyping, join, and resolution of
// NAME placeholders.
package types

import "github.com/tigerlang/tigerc/compiler/internal/symbol"

// Tag identifies which variant of the type union a Ty is.
type Tag int

const (
	Int Tag = iota
	String
	Unit
	Nil
	Record
	Array
	Name
	Top
	Bottom
)

func (t Tag) String() string {
	switch t {
	case Int:
		return "int"
	case String:
		return "string"
	case Unit:
		return "unit"
	case Nil:
		return "nil"
	case Record:
		return "record"
	case Array:
		return "array"
	case Name:
		return "name"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "<bad-tag>"
	}
}

// Field is one member of a RECORD type.
type Field struct {
	Name symbol.Symbol
	Type *Ty
}

// Ty is a node in the type lattice. RECORD and ARRAY carry nominal
// identity: two Tys built by separate calls to NewRecord/NewArray are
// never the same type even with identical Fields/Elem, because each
// call allocates a fresh *Ty and identity is pointer identity.
//
// NAME carries a one-shot resolution slot (Resolved). It starts nil
// ("unresolved") and the Resolver (package resolve) sets it exactly
// once; after that, Resolved is never a NAME itself.
type Ty struct {
	Tag    Tag
	Sym    symbol.Symbol // Name: the symbol this placeholder stands for
	Fields []Field        // Record
	Elem   *Ty             // Array

	Resolved *Ty // Name: nil until the resolver sets it
}

var (
	IntTy    = &Ty{Tag: Int}
	StringTy = &Ty{Tag: String}
	UnitTy   = &Ty{Tag: Unit}
	NilTy    = &Ty{Tag: Nil}
	TopTy    = &Ty{Tag: Top}
	BottomTy = &Ty{Tag: Bottom}
)

// NewRecord allocates a fresh nominally-distinct RECORD type.
func NewRecord(fields []Field) *Ty {
	return &Ty{Tag: Record, Fields: fields}
}

// NewArray allocates a fresh nominally-distinct ARRAY type.
func NewArray(elem *Ty) *Ty {
	return &Ty{Tag: Array, Elem: elem}
}

// NewName allocates an unresolved NAME placeholder for sym.
func NewName(sym symbol.Symbol) *Ty {
	return &Ty{Tag: Name, Sym: sym}
}

// Resolve sets t's resolution slot. It must only be called once per
// NAME, by the resolver; target must not itself be a NAME.
func (t *Ty) Resolve(target *Ty) {
	if t.Tag != Name {
		panic("types: Resolve called on a non-NAME type")
	}
	if target != nil && target.Tag == Name {
		panic("types: NAME resolved to another NAME")
	}
	t.Resolved = target
}

// Actual follows a NAME's resolution slot to the concrete type it
// denotes. For any non-NAME type (including TOP/BOTTOM), Actual is the
// identity function. An unresolved NAME (should not occur after the
// resolver has run) reports as TOP rather than panicking, so a caller
// that runs ahead of resolution still gets a well-formed answer.
func (t *Ty) Actual() *Ty {
	if t == nil {
		return TopTy
	}
	if t.Tag == Name {
		if t.Resolved == nil {
			return TopTy
		}
		return t.Resolved
	}
	return t
}

// WellTyped reports whether t is not TOP (after following NAME chains).
func WellTyped(t *Ty) bool {
	return t.Actual().Tag != Top
}

// Equal is strict identity: same tag, and for RECORD/ARRAY the same
// underlying *Ty (nominal), for NAME the same resolved target.
func Equal(a, b *Ty) bool {
	a, b = a.Actual(), b.Actual()
	if a == b {
		return true
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case Record, Array:
		return a == b // nominal: distinct allocations are distinct
	default:
		return true // INT=INT, STRING=STRING, UNIT=UNIT, NIL=NIL, TOP=TOP, BOTTOM=BOTTOM
	}
}

// Subtype is the smallest reflexive relation closed under:
//   BOTTOM <= t for all t, t <= TOP for all t,
//   NIL <= r for every RECORD r,
//   and a <= b otherwise iff a and b are nominally the same type.
func Subtype(a, b *Ty) bool {
	a, b = a.Actual(), b.Actual()
	if a.Tag == Bottom {
		return true
	}
	if b.Tag == Top {
		return true
	}
	if a.Tag == Nil && b.Tag == Record {
		return true
	}
	return Equal(a, b)
}

// Join computes the least upper bound of a and b under Subtype, or
// TOP when neither is a subtype of the other.
func Join(a, b *Ty) *Ty {
	a, b = a.Actual(), b.Actual()
	if Subtype(a, b) {
		return b
	}
	if Subtype(b, a) {
		return a
	}
	return TopTy
}
