package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSingleConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recache.toml")
	content := `
[recache]
entries = ["home.html"]
output_dir = "dist"
verbose = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSingleConfig(path)
	if err != nil {
		t.Fatalf("LoadSingleConfig: %v", err)
	}
	if len(cfg.Entries) != 1 || cfg.Entries[0] != "home.html" {
		t.Errorf("unexpected entries: %v", cfg.Entries)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("unexpected output_dir: %s", cfg.OutputDir)
	}
	if !cfg.Verbose {
		t.Error("expected verbose true")
	}
}

func TestLoadSingleConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recache.yaml")
	content := "recache:\n  entries: [\"home.html\"]\n  output_dir: dist\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSingleConfig(path)
	if err != nil {
		t.Fatalf("LoadSingleConfig: %v", err)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("unexpected output_dir: %s", cfg.OutputDir)
	}
}

func TestLoadSingleConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recache.json")
	content := `{"recache": {"output_dir": "dist"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSingleConfig(path)
	if err != nil {
		t.Fatalf("LoadSingleConfig: %v", err)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("unexpected output_dir: %s", cfg.OutputDir)
	}
}

func TestLoadWithDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	orig, _ := os.Getwd()
	defer func() { _ = os.Chdir(orig) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "cache" {
		t.Errorf("expected default output_dir, got %s", cfg.OutputDir)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recache.toml")
	content := "[recache]\noutput_dir = \"dist\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("expected file value to win, got %s", cfg.OutputDir)
	}
	if len(cfg.Entries) != 2 {
		t.Errorf("expected default entries to fill in, got %v", cfg.Entries)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RECACHE_OUTPUT_DIR", "from-env")
	t.Setenv("RECACHE_VERBOSE", "true")

	cfg := DefaultConfig()
	if err := ApplyEnvOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides: %v", err)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("expected env override, got %s", cfg.OutputDir)
	}
	if !cfg.Verbose {
		t.Error("expected verbose true from env")
	}
}
