package taxonomy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	testSynonyms = `concepts:
  widget id: [widget identifier, wid]
  part number: [part no, pn]
`
	testCategories = `categories:
  hardware: [widget, device]
roles:
  owner: [owner]
  co-owner: [co-owner]
`
	testCheckboxes = `concepts:
  - name: color
    aliases: [colour]
    states:
      - name: red
        phrases: [red, crimson]
      - name: blue
        field: deep blue
        phrases: [blue]
        capture:
          field: shade
          regex: 'shade\s+(\d+)'
`
)

func writeTables(t *testing.T, synonyms, categories, checkboxes string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		synonymsFile:   synonyms,
		categoriesFile: categories,
		checkboxesFile: checkboxes,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadFromDir(t *testing.T) {
	dir := writeTables(t, testSynonyms, testCategories, testCheckboxes)

	tax, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tax.ConceptCount() != 2 || tax.CategoryCount() != 1 {
		t.Errorf("got %d concepts and %d categories, want 2 and 1",
			tax.ConceptCount(), tax.CategoryCount())
	}

	if got := tax.Concepts("acme widget identifier"); len(got) != 1 || got[0] != "widget id" {
		t.Errorf("Concepts(acme widget identifier) = %v, want [widget id]", got)
	}
	if got := tax.Categories("widget count"); len(got) != 1 || got[0] != "hardware" {
		t.Errorf("Categories(widget count) = %v, want [hardware]", got)
	}
	if got := tax.Role("co-owner box"); got != "co-owner" {
		t.Errorf("Role(co-owner box) = %q, want co-owner", got)
	}

	concept, ok := tax.CheckboxConceptFor("colour")
	if !ok || concept.Name != "color" {
		t.Fatalf("CheckboxConceptFor(colour) = %v ok=%v", concept, ok)
	}
	if len(concept.States) != 2 {
		t.Fatalf("got %d states, want 2", len(concept.States))
	}
	blue := concept.States[1]
	if blue.Field != "deep blue" {
		t.Errorf("blue state field = %q, want deep blue", blue.Field)
	}
	if blue.Capture == nil {
		t.Fatal("blue state has no capture")
	}
	if got := blue.Capture.Extract("blue shade 42"); got != "42" {
		t.Errorf("capture extract = %q, want 42", got)
	}
	// A state without an explicit field defaults to its name.
	if red := concept.States[0]; red.Field != "red" {
		t.Errorf("red state field = %q, want red", red.Field)
	}
}

func TestLoadMissingTables(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected an error for an empty taxonomy directory")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name       string
		synonyms   string
		categories string
		checkboxes string
		wantErr    string
	}{
		{
			name:       "empty concept key",
			synonyms:   "concepts:\n  \"\": [x]\n",
			categories: testCategories,
			checkboxes: testCheckboxes,
			wantErr:    "empty concept key",
		},
		{
			name:       "unnamed checkbox concept",
			synonyms:   testSynonyms,
			categories: testCategories,
			checkboxes: "concepts:\n  - states:\n      - name: a\n        phrases: [a]\n",
			wantErr:    "empty name",
		},
		{
			name:       "duplicate state",
			synonyms:   testSynonyms,
			categories: testCategories,
			checkboxes: "concepts:\n  - name: c\n    states:\n      - name: a\n        phrases: [a]\n      - name: a\n        phrases: [b]\n",
			wantErr:    "duplicate state",
		},
		{
			name:       "state without phrases",
			synonyms:   testSynonyms,
			categories: testCategories,
			checkboxes: "concepts:\n  - name: c\n    states:\n      - name: a\n",
			wantErr:    "no phrases",
		},
		{
			name:       "concept without states",
			synonyms:   testSynonyms,
			categories: testCategories,
			checkboxes: "concepts:\n  - name: c\n    states: []\n",
			wantErr:    "no states",
		},
		{
			name:       "bad capture regex",
			synonyms:   testSynonyms,
			categories: testCategories,
			checkboxes: "concepts:\n  - name: c\n    states:\n      - name: a\n        phrases: [a]\n        capture:\n          field: f\n          regex: '('\n",
			wantErr:    "capture",
		},
		{
			name:       "capture without field",
			synonyms:   testSynonyms,
			categories: testCategories,
			checkboxes: "concepts:\n  - name: c\n    states:\n      - name: a\n        phrases: [a]\n        capture:\n          regex: '(\\d+)'\n",
			wantErr:    "capture has no field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTables(t, tt.synonyms, tt.categories, tt.checkboxes)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
