package main

import "github.com/tigerlang/tigerc/compiler/internal/term"

func usage() {
	term.Eprintln("tigerc — Tiger semantic analyzer")
	term.Eprintln("")
	term.Eprintln("Usage:")
	term.Eprintln("  tigerc <command> [args]")
	term.Eprintln("")
	term.Eprintln("Commands:")
	term.Eprintln("  version                          Print version")
	term.Eprintln("  help                             Show this help")
	term.Eprintln("  lex <file>                       Lex a .tig file and print its token stream")
	term.Eprintln("  parse <file>                     Parse a .tig file and print its AST outline")
	term.Eprintln("  check [--werror] <file>          Parse + typecheck, print diagnostics")
	term.Eprintln("  dump-types [--werror] <file>     Check, then pretty-print the resolved type/value environment")
	term.Eprintln("")
	term.Eprintln("Notes:")
	term.Eprintln("  - With no <file>, each command looks for ./tigerc.yaml and uses its `entry` file.")
	term.Eprintln("  - --werror makes warnings (unused variable, unreachable code) exit non-zero too.")
}
