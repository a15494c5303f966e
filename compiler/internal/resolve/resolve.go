// Package resolve implements the type-declaration resolver: spec.md
// §4.1's algorithm that turns a block of mutually recursive type
// declarations into fully resolved type-environment entries,
// detecting illegal alias cycles along the way.
//
// Implementation note: spec.md's pass-1/pass-2 description folds
// "introduce" and "reuse an already-bound alias target" into a single
// sequential pass. Read completely literally that collapses distinct
// declared names that alias each other into one shared NAME object,
// which loses per-name identity needed to report a multi-name cycle
// (scenario §8.2.1 expects `CyclicTypeDec{a, b}`, not a single name).
// This implementation instead builds one NAME header per declared
// name first (classic two-pass: headers, then bodies), which is
// the structure the worked examples actually require; the externally
// observable contract — every invariant in spec.md §4.1 — is
// unchanged.
package resolve

import (
	"golang.org/x/exp/slices"

	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/diag"
	"github.com/tigerlang/tigerc/compiler/internal/env"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
	"github.com/tigerlang/tigerc/compiler/internal/types"
)

type header struct {
	sym symbol.Symbol
	pos ast.Pos
	ty  *types.Ty
	body ast.TyBody
}

// TypeDecs resolves one TypeDec block against tenv, returning the
// extended type environment. It is invoked by check.transDec whenever
// a type-declaration block is encountered.
func TypeDecs(block *ast.TypeDec, tenv env.TypeEnv, names *symbol.Table, sink diag.Sink) env.TypeEnv {
	seen := map[symbol.Symbol]bool{}
	var headers []header

	// Pass 1 — introduce: one fresh NAME header per first occurrence
	// of a declared name; TypeRedefined on later duplicates.
	for _, td := range block.Types {
		if seen[td.Name.Sym] {
			sink.Log(diag.Diagnostic{
				Kind: diag.TypeRedefined,
				Pos:  td.At,
				Payload: map[string]string{"name": names.Name(td.Name.Sym)},
			})
			continue
		}
		seen[td.Name.Sym] = true

		h := types.NewName(td.Name.Sym)
		tenv = tenv.Insert(td.Name.Sym, h)
		headers = append(headers, header{sym: td.Name.Sym, pos: td.At, ty: h, body: td.Body})
	}

	// Pass 2 — build each header's body now that every name in this
	// block is visible, so mutual/forward references resolve. A
	// RecordTy/ArrayTy body settles its header immediately (it is a
	// concrete type, not an alias link); a NameTy body just records
	// what it points to, for the alias-chain walk below.
	aliasOf := map[*types.Ty]*types.Ty{}
	for _, h := range headers {
		switch b := h.body.(type) {
		case *ast.NameTy:
			target, ok := tenv.Lookup(b.Sym)
			if !ok {
				aliasOf[h.ty] = nil
				continue
			}
			aliasOf[h.ty] = target
		case *ast.RecordTy:
			fields := make([]types.Field, 0, len(b.Fields))
			for _, f := range b.Fields {
				ft, ok := tenv.Lookup(f.Type)
				if !ok {
					sink.Log(diag.Diagnostic{
						Kind: diag.UnresolvedType,
						Pos:  h.pos,
						Payload: map[string]string{"sym": names.Name(f.Type)},
					})
					ft = types.TopTy
				}
				fields = append(fields, types.Field{Name: f.Name.Sym, Type: ft})
			}
			h.ty.Resolve(types.NewRecord(fields))
		case *ast.ArrayTy:
			elem, ok := tenv.Lookup(b.Sym)
			if !ok {
				sink.Log(diag.Diagnostic{
					Kind: diag.UnresolvedType,
					Pos:  h.pos,
					Payload: map[string]string{"sym": names.Name(b.Sym)},
				})
				elem = types.TopTy
			}
			h.ty.Resolve(types.NewArray(elem))
		}
	}

	// Pass 2, continued — walk every remaining pure-alias chain to its
	// concrete end, cycle-checking along the way. RecordTy/ArrayTy
	// headers are already resolved and are skipped.
	for _, h := range headers {
		walkAlias(h.ty, h.pos, aliasOf, names, sink, nil)
	}

	return tenv
}

func walkAlias(n *types.Ty, pos ast.Pos, aliasOf map[*types.Ty]*types.Ty, names *symbol.Table, sink diag.Sink, path []*types.Ty) {
	if n.Resolved != nil {
		settleAll(path, n.Resolved)
		return
	}
	if slices.Contains(path, n) {
		settleCycle(path, pos, names, sink)
		return
	}
	path = append(path, n)

	target, known := aliasOf[n]
	if !known || target == nil {
		if known {
			sink.Log(diag.Diagnostic{
				Kind:    diag.UnresolvedType,
				Pos:     pos,
				Payload: map[string]string{"sym": names.Name(n.Sym)},
			})
		}
		settleAll(path, types.TopTy)
		return
	}
	if target.Tag == types.Name {
		walkAlias(target, pos, aliasOf, names, sink, path)
		return
	}
	settleAll(path, target)
}

func settleAll(path []*types.Ty, target *types.Ty) {
	for _, n := range path {
		if n.Resolved == nil {
			n.Resolve(target)
		}
	}
}

func settleCycle(path []*types.Ty, pos ast.Pos, names *symbol.Table, sink diag.Sink) {
	cycleNames := make([]string, 0, len(path))
	for _, n := range path {
		cycleNames = append(cycleNames, names.Name(n.Sym))
	}
	sink.Log(diag.Diagnostic{
		Kind:    diag.CyclicTypeDec,
		Pos:     pos,
		Payload: map[string]string{"cycle": joinNames(cycleNames)},
	})
	settleAll(path, types.TopTy)
}

func joinNames(ns []string) string {
	out := ""
	for i, n := range ns {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
