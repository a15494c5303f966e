// Package build loads a Tiger source file and parses it into a
// program, adapted from the teacher's multi-file import-graph
// ResolveAndParse. Tiger has no module system (spec.md's grammar names
// exactly one compilation unit, the top-level expression), so the
// import-graph walk, cycle detection, and decl-merging this is
// grounded on are gone — only the absolute-path bookkeeping survives.
package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tigerlang/tigerc/compiler/internal/ast"
	"github.com/tigerlang/tigerc/compiler/internal/parser"
	"github.com/tigerlang/tigerc/compiler/internal/symbol"
)

// LoadAndParse reads entryPath and parses it into a Program. names is
// supplied by the caller so the returned program's symbols are interned
// in whatever table the rest of the pipeline (the checker, the CLI's
// diagnostic printer) already shares.
func LoadAndParse(entryPath string, names *symbol.Table) (*ast.Program, error) {
	entryAbs, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, fmt.Errorf("abs(%s): %w", entryPath, err)
	}
	if !fileExists(entryAbs) {
		return nil, fmt.Errorf("no such file: %s", entryPath)
	}

	data, err := os.ReadFile(entryAbs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entryPath, err)
	}

	p := parser.New(string(data), names)
	prog, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", entryPath, err)
	}
	return prog, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
