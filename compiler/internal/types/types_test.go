package types

import (
	"testing"

	"github.com/tigerlang/tigerc/compiler/internal/symbol"
)

func TestSubtypeReflexive(t *testing.T) {
	for _, ty := range []*Ty{IntTy, StringTy, UnitTy, NilTy, TopTy, BottomTy} {
		if !Subtype(ty, ty) {
			t.Errorf("Subtype(%v, %v) = false, want true", ty.Tag, ty.Tag)
		}
	}
	rec := NewRecord(nil)
	if !Subtype(rec, rec) {
		t.Error("record type is not a subtype of itself")
	}
}

func TestNilSubtypesEveryRecordOnly(t *testing.T) {
	rec := NewRecord([]Field{{symbol.Symbol(1), IntTy}})
	if !Subtype(NilTy, rec) {
		t.Error("NIL <= RECORD should hold")
	}
	if Subtype(NilTy, IntTy) || Subtype(NilTy, StringTy) || Subtype(NilTy, UnitTy) {
		t.Error("NIL must not be a subtype of INT/STRING/UNIT")
	}
}

func TestNominalIdentity(t *testing.T) {
	a := NewRecord([]Field{{symbol.Symbol(1), IntTy}})
	b := NewRecord([]Field{{symbol.Symbol(1), IntTy}})
	if Subtype(a, b) || Subtype(b, a) {
		t.Error("two structurally identical but distinct RECORD declarations must not be mutually assignable")
	}
	if !Subtype(a, a) {
		t.Error("a record is always a subtype of itself")
	}
}

func TestTopBottomAbsorb(t *testing.T) {
	rec := NewRecord(nil)
	if !Subtype(BottomTy, rec) {
		t.Error("BOTTOM <= everything")
	}
	if !Subtype(rec, TopTy) {
		t.Error("everything <= TOP")
	}
}

func TestJoin(t *testing.T) {
	rec := NewRecord(nil)
	if got := Join(NilTy, rec); got != rec {
		t.Errorf("Join(NIL, RECORD) = %v, want the record itself", got)
	}
	if got := Join(IntTy, StringTy); got.Tag != Top {
		t.Errorf("Join(INT, STRING) = %v, want TOP", got.Tag)
	}
	if got := Join(BottomTy, IntTy); got != IntTy {
		t.Errorf("Join(BOTTOM, INT) = %v, want INT", got)
	}
}

func TestNameResolutionIsOneHop(t *testing.T) {
	n := NewName(symbol.Symbol(5))
	n.Resolve(IntTy)
	if n.Actual() != IntTy {
		t.Errorf("resolved NAME should follow to INT, got %v", n.Actual())
	}
}

func TestUnresolvedNameReportsTop(t *testing.T) {
	n := NewName(symbol.Symbol(7))
	if WellTyped(n) {
		t.Error("an unresolved NAME must not be well-typed")
	}
}
