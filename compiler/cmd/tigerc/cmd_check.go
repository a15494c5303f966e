package main

import (
	"github.com/tigerlang/tigerc/compiler/internal/build"
	"github.com/tigerlang/tigerc/compiler/internal/check"
	"github.com/tigerlang/tigerc/compiler/internal/diag"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
	"github.com/tigerlang/tigerc/compiler/internal/term"
)

/* ---------- check ---------- */

func cmdCheck(args []string) int {
	var werr bool
	file, ok := resolveFile(args, map[string]*bool{"--werror": &werr}, "usage: tigerc check [--werror] <file.tig>")
	if !ok {
		return 2
	}

	names := symbol.NewTable()
	prog, err := build.LoadAndParse(file, names)
	if err != nil {
		term.Eprintf("error: %v\n", err)
		return 1
	}

	sink := &diag.Collector{}
	res := check.CheckProgram(prog.Body, names, sink)
	_ = res

	var errCount, warnCount int
	for _, d := range sink.Diagnostics {
		if d.Kind == diag.UnusedVariable || d.Kind == diag.UnreachableAfterBreak {
			warnCount++
			term.Eprintf("warning: %s\n", d.Message())
			continue
		}
		errCount++
		term.Eprintf("error: %s\n", d.Message())
	}

	term.Eprintf("summary: %d error(s), %d warning(s)\n", errCount, warnCount)
	if errCount > 0 || (werr && warnCount > 0) {
		return 1
	}
	return 0
}
