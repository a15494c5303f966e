package main

import (
	"os"

	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/parser"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
	"github.com/tigerlang/tigerc/compiler/internal/term"
)

/* ---------- parse ---------- */

func cmdParse(args []string) int {
	file, ok := resolveFile(args, nil, "usage: tigerc parse [<file.tig>]")
	if !ok {
		return 2
	}

	data, err := os.ReadFile(file)
	if err != nil {
		term.Eprintf("read %s: %v\n", file, err)
		return 1
	}

	names := symbol.NewTable()
	p := parser.New(string(data), names)
	prog, err := p.Parse()
	if err != nil {
		term.Eprintf("parse %s: %v\n", file, err)
		return 1
	}

	out := ast.DumpProgram(prog, names)
	term.Printf("%s", out)
	return 0
}
