package personas

import (
	"testing"

	"github.com/litlfred/dakit/internal/core"
)

func TestFilePath(t *testing.T) {
	d := Definition{}

	got, err := d.FilePath(map[string]any{"id": "clinician"})
	if err != nil {
		t.Fatalf("FilePath failed: %v", err)
	}
	if got != "actors/clinician.json" {
		t.Errorf("FilePath = %q", got)
	}

	// Without an id the name is slugified.
	got, err = d.FilePath(map[string]any{"name": "ANC Clinician"})
	if err != nil {
		t.Fatalf("FilePath failed: %v", err)
	}
	if got != "actors/anc-clinician.json" {
		t.Errorf("FilePath from name = %q", got)
	}

	if _, err := d.FilePath(map[string]any{"role": "x"}); err == nil {
		t.Error("FilePath without id or name succeeded")
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	d := Definition{}
	persona := map[string]any{"id": "clinician", "name": "ANC clinician"}

	content, err := d.Serialize(persona)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	parsed, err := d.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if core.ExtractID(parsed) != "clinician" {
		t.Errorf("parsed = %v", parsed)
	}

	if _, err := d.Parse([]byte("{broken")); err == nil {
		t.Error("Parse of malformed json succeeded")
	}
}

func TestValidate(t *testing.T) {
	d := Definition{}

	errs, warns := d.Validate(map[string]any{"id": "clinician", "name": "ANC clinician", "description": "Provides care"})
	if len(errs) != 0 || len(warns) != 0 {
		t.Errorf("complete persona: errs=%v warns=%v", errs, warns)
	}

	errs, warns = d.Validate(map[string]any{"id": "x"})
	if len(errs) != 0 {
		t.Errorf("missing fields are warnings, got errors %v", errs)
	}
	if len(warns) != 2 {
		t.Errorf("warns = %v, want name and description warnings", warns)
	}

	errs, _ = d.Validate("not an object")
	if len(errs) != 1 {
		t.Errorf("non-object: errs = %v", errs)
	}
}
