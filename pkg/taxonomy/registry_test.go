package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryDefaults(t *testing.T) {
	reg := NewRegistry("")
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Current() == nil || reg.Current().ConceptCount() == 0 {
		t.Fatal("registry with no directory should serve the embedded tables")
	}
}

func TestRegistryReload(t *testing.T) {
	dir := writeTables(t, testSynonyms, testCategories, testCheckboxes)
	reg := NewRegistry(dir)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reg.Current().ConceptCount(); got != 2 {
		t.Fatalf("got %d concepts, want 2", got)
	}

	extended := testSynonyms + "  serial number: [serial no, sn]\n"
	if err := os.WriteFile(filepath.Join(dir, synonymsFile), []byte(extended), 0o644); err != nil {
		t.Fatalf("rewrite synonyms: %v", err)
	}
	if err := reg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := reg.Current().ConceptCount(); got != 3 {
		t.Errorf("got %d concepts after reload, want 3", got)
	}
}

func TestRegistryReloadKeepsOldOnFailure(t *testing.T) {
	dir := writeTables(t, testSynonyms, testCategories, testCheckboxes)
	reg := NewRegistry(dir)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := reg.Current()

	broken := "concepts:\n  - name: c\n    states:\n      - name: a\n        phrases: [a]\n        capture:\n          field: f\n          regex: '('\n"
	if err := os.WriteFile(filepath.Join(dir, checkboxesFile), []byte(broken), 0o644); err != nil {
		t.Fatalf("rewrite checkboxes: %v", err)
	}

	if err := reg.Reload(); err == nil {
		t.Fatal("expected reload to fail on a broken table")
	}
	if reg.Current() != before {
		t.Error("failed reload must keep the previous taxonomy active")
	}
}
