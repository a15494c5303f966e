package diag

import "testing"

func TestCatalogCoversEveryKind(t *testing.T) {
	for k, name := range kindNames {
		entry := Lookup(k)
		if entry.ID == "TC0000" {
			t.Errorf("kind %s has no catalog entry", name)
		}
	}
}

func TestMessageSubstitution(t *testing.T) {
	d := Diagnostic{
		Kind: AssignmentMismatch,
		Pos:  12,
		Payload: map[string]string{
			"actual":   "string",
			"expected": "int",
		},
	}
	want := "cannot assign string to int"
	if got := d.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestCollectorHasErrorsIgnoresWarnings(t *testing.T) {
	c := &Collector{}
	c.Log(Diagnostic{Kind: UnusedVariable})
	if c.HasErrors() {
		t.Error("a collector with only warnings should report no errors")
	}
	c.Log(Diagnostic{Kind: IllegalBreak})
	if !c.HasErrors() {
		t.Error("a collector with a real diagnostic should report errors")
	}
}
