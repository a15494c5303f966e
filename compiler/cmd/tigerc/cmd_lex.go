package main

import (
	"os"

	"github.com/tigerlang/tigerc/compiler/internal/lexer"
	"github.com/tigerlang/tigerc/compiler/internal/term"
)

/* ---------- lex ---------- */

func cmdLex(args []string) int {
	file, ok := resolveFile(args, nil, "usage: tigerc lex [<file.tig>]")
	if !ok {
		return 2
	}

	data, err := os.ReadFile(file)
	if err != nil {
		term.Eprintf("read %s: %v\n", file, err)
		return 1
	}

	lx := lexer.New(string(data))
	for {
		tok := lx.Next()
		if tok.Kind == lexer.TokEOF {
			term.Printf("%6d  EOF\n", tok.Pos)
			break
		}
		term.Printf("%6d  %-8s %q\n", tok.Pos, tok.Kind, tok.Lex)
	}
	return 0
}
