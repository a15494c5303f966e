package main

import (
	"strings"

	"github.com/tigerlang/tigerc/compiler/internal/config"
	"github.com/tigerlang/tigerc/compiler/internal/term"
)

// resolveFile parses argv for flags and a trailing file path, falling
// back to ./tigerc.yaml's `entry` when no file is given on the command
// line — the same flags-vs-manifest split the teacher's cmd_build.go
// draws between explicit argv and its own (absent, here added) project
// config, per SPEC_FULL.md §1.
func resolveFile(argv []string, flags map[string]*bool, usage string) (file string, ok bool) {
	for i := 0; i < len(argv); i++ {
		s := argv[i]
		if p, isFlag := flags[s]; isFlag {
			*p = true
			continue
		}
		if strings.HasPrefix(s, "-") {
			term.Eprintln(usage)
			return "", false
		}
		if file == "" {
			file = s
		}
	}
	if file == "" {
		proj, err := config.LoadFromDir(".")
		if err != nil {
			term.Eprintf("%v\n", err)
			return "", false
		}
		if proj == nil {
			term.Eprintln(usage)
			return "", false
		}
		file = proj.EntryPath()
		if p, isFlag := flags["--werror"]; isFlag && proj.WarningsFatal {
			*p = true
		}
	}
	return file, true
}
