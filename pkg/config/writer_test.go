package config

import (
	"strings"
	"testing"
)

func TestWriteTOMLRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Entries = []string{"index.html"}

	data, err := Write("recache.toml", cfg)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	parsed, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if len(parsed.Entries) != 1 || parsed.Entries[0] != "index.html" {
		t.Errorf("unexpected round-tripped entries: %v", parsed.Entries)
	}
}

func TestWriteYAMLUsesExtension(t *testing.T) {
	cfg := DefaultConfig()
	data, err := Write("recache.yaml", cfg)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(string(data), "recache:") {
		t.Errorf("expected top-level recache key, got %q", data)
	}

	parsed, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if parsed.OutputDir != cfg.OutputDir {
		t.Errorf("expected output_dir %q, got %q", cfg.OutputDir, parsed.OutputDir)
	}
}

func TestWriteJSONIsValid(t *testing.T) {
	cfg := DefaultConfig()
	data, err := Write("recache.json", cfg)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if parsed.OutputDir != cfg.OutputDir {
		t.Errorf("expected output_dir %q, got %q", cfg.OutputDir, parsed.OutputDir)
	}
}
