package parser_test

import (
	"testing"

	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/parser"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
)

// Unlike Desi's comma-separated multi-var let/assign, Tiger only binds
// one name per `var` declaration; a sequence of them inside one `let`
// stays a sequence of independent VarDec nodes rather than collapsing
// into a single multi-name form.
func TestConsecutiveVarDecsStayIndependent(t *testing.T) {
	type tc struct {
		name string
		body string
	}
	cases := []tc{
		{name: "three_plain_vars", body: "let var a := 1 var b := 2 var c := 3 in a + b + c end"},
		{name: "annotated_and_plain", body: "let var a : int := 1 var b := 2 in a + b end"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			names := symbol.NewTable()
			p := parser.New(c.body, names)
			prog, err := p.Parse()
			if err != nil {
				t.Fatalf("parse failed for %s: %v", c.name, err)
			}
			let, ok := prog.Body.(*ast.LetExp)
			if !ok {
				t.Fatalf("%s: expected LetExp, got %#v", c.name, prog.Body)
			}
			for i, d := range let.Decs {
				if _, ok := d.(*ast.VarDec); !ok {
					t.Fatalf("%s: dec %d not a VarDec, got %#v", c.name, i, d)
				}
			}
		})
	}
}
