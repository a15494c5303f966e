// Package diag defines the checker's closed diagnostic taxonomy and
// the sink collaborator it reports to.
package diag

import "fmt"

// Pos is an opaque source position: a byte offset into the file being
// checked, per spec.md §6.1 ("positions are opaque integers").
type Pos int

// Kind identifies one row of the error taxonomy (spec.md §7).
type Kind int

const (
	UnboundType Kind = iota
	UnresolvedType
	CyclicTypeDec
	TypeRedefined
	UndefinedVar
	UndefinedFunction
	NameBoundToFunction
	NameBoundToVar
	NoSuchField
	NonRecordAccess
	NonIntSubscript
	NonArrayAccess
	ArityMismatch
	ArgumentMismatch
	ArgumentRedefined
	OperandMismatch
	FieldMismatch
	MissingField
	NonRecordType
	UnboundRecordType
	AssignmentMismatch
	NilInitialization
	ConditionMismatch
	NonUnitIf
	NonUnitWhile
	NonUnitFor
	NonUnitProcedure
	IfBranchMismatch
	ForRangeMismatch
	ArraySizeMismatch
	ArrayInitMismatch
	NonArrayType
	TypeMismatch
	IllegalBreak

	// Warnings, supplemented per SPEC_FULL.md §3.3; not part of the
	// error taxonomy proper but delivered through the same Sink.
	UnusedVariable
	UnreachableAfterBreak
)

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownKind"
}

var kindNames = map[Kind]string{
	UnboundType:           "UnboundType",
	UnresolvedType:        "UnresolvedType",
	CyclicTypeDec:         "CyclicTypeDec",
	TypeRedefined:         "TypeRedefined",
	UndefinedVar:          "UndefinedVar",
	UndefinedFunction:     "UndefinedFunction",
	NameBoundToFunction:   "NameBoundToFunction",
	NameBoundToVar:        "NameBoundToVar",
	NoSuchField:           "NoSuchField",
	NonRecordAccess:       "NonRecordAccess",
	NonIntSubscript:       "NonIntSubscript",
	NonArrayAccess:        "NonArrayAccess",
	ArityMismatch:         "ArityMismatch",
	ArgumentMismatch:      "ArgumentMismatch",
	ArgumentRedefined:     "ArgumentRedefined",
	OperandMismatch:       "OperandMismatch",
	FieldMismatch:         "FieldMismatch",
	MissingField:          "MissingField",
	NonRecordType:         "NonRecordType",
	UnboundRecordType:     "UnboundRecordType",
	AssignmentMismatch:    "AssignmentMismatch",
	NilInitialization:     "NilInitialization",
	ConditionMismatch:     "ConditionMismatch",
	NonUnitIf:             "NonUnitIf",
	NonUnitWhile:          "NonUnitWhile",
	NonUnitFor:            "NonUnitFor",
	NonUnitProcedure:      "NonUnitProcedure",
	IfBranchMismatch:      "IfBranchMismatch",
	ForRangeMismatch:      "ForRangeMismatch",
	ArraySizeMismatch:     "ArraySizeMismatch",
	ArrayInitMismatch:     "ArrayInitMismatch",
	NonArrayType:          "NonArrayType",
	TypeMismatch:          "TypeMismatch",
	IllegalBreak:          "IllegalBreak",
	UnusedVariable:        "UnusedVariable",
	UnreachableAfterBreak: "UnreachableAfterBreak",
}

// Diagnostic is a single checker finding. Payload is kind-specific and
// holds whatever §7 lists for that Kind (names, type descriptions,
// lengths); callers format it through Message rather than reaching
// into the map directly, mirroring the teacher's Diagnostic.Error().
type Diagnostic struct {
	Kind    Kind
	Pos     Pos
	Payload map[string]string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d: %s: %s", d.Pos, d.Kind, d.Message())
}

// Message renders a human-readable line for the diagnostic by looking
// up its code entry in the embedded catalog and substituting payload
// fields referenced as {name} in the entry's Title.
func (d Diagnostic) Message() string {
	entry := Lookup(d.Kind)
	return substitute(entry.Title, d.Payload)
}

func substitute(template string, payload map[string]string) string {
	result := template
	for k, v := range payload {
		result = replaceAll(result, "{"+k+"}", v)
	}
	return result
}

func replaceAll(s, old, new string) string {
	for {
		idx := indexOf(s, old)
		if idx < 0 {
			return s
		}
		s = s[:idx] + new + s[idx+len(old):]
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// Sink is the error-reporting collaborator threaded through the
// checker (spec.md §6.3). Log never returns an error: recording a
// diagnostic is not itself a failure mode.
type Sink interface {
	Log(Diagnostic)
}

// Collector is the in-memory Sink used by the CLI and by tests: it
// just appends, in the order Log is called, which is traversal order
// per spec.md §5.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Log(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether any non-warning diagnostic was logged.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Kind != UnusedVariable && d.Kind != UnreachableAfterBreak {
			return true
		}
	}
	return false
}
