// Package config reads a tigerc.yaml project file, the optional
// manifest that lets `tigerc check` run without an explicit path and
// flags on the command line. Adapted from davidkellis-able's
// package.yml manifest loader: a typed struct decoded with
// gopkg.in/yaml.v3's KnownFields strictness, validated once after
// decode rather than field-by-field during decode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional project manifest name the CLI looks
// for in the current directory when no entry file is given on the
// command line.
const FileName = "tigerc.yaml"

// Project is the parsed contents of a tigerc.yaml file.
type Project struct {
	Path string

	Name          string
	Entry         string
	WarningsFatal bool
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "tigerc.yaml: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("tigerc.yaml validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type projectYAML struct {
	Name          string `yaml:"name"`
	Entry         string `yaml:"entry"`
	WarningsFatal bool   `yaml:"warnings_fatal"`
}

// Load reads and validates a tigerc.yaml file at path.
func Load(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw projectYAML
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	proj := &Project{
		Path:          absPath,
		Name:          strings.TrimSpace(raw.Name),
		Entry:         strings.TrimSpace(raw.Entry),
		WarningsFatal: raw.WarningsFatal,
	}
	if err := proj.validate(); err != nil {
		return nil, err
	}
	return proj, nil
}

// LoadFromDir looks for FileName inside dir and loads it if present.
// A missing manifest is not an error: the CLI falls back to flags.
func LoadFromDir(dir string) (*Project, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return Load(path)
}

// EntryPath resolves the project's entry file to an absolute path,
// relative to the directory the manifest was loaded from.
func (p *Project) EntryPath() string {
	if p == nil || p.Entry == "" {
		return ""
	}
	if filepath.IsAbs(p.Entry) {
		return p.Entry
	}
	return filepath.Join(filepath.Dir(p.Path), p.Entry)
}

func (p *Project) validate() error {
	var errs ValidationError
	if p.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if p.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must be provided")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
