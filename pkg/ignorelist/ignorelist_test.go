package ignorelist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "recache.ignore"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("expected empty set, got %v", set)
	}
}

func TestLoadParsesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recache.ignore")
	if err := os.WriteFile(path, []byte(`{"/debug.js": true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set["/debug.js"] {
		t.Errorf("expected /debug.js to be ignored, got %v", set)
	}
}
