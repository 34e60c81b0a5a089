package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Entries) != 2 || cfg.Entries[0] != "index.html" || cfg.Entries[1] != "tester.html" {
		t.Errorf("unexpected default entries: %v", cfg.Entries)
	}
	if cfg.OutputDir != "cache" {
		t.Errorf("expected default output_dir cache, got %s", cfg.OutputDir)
	}
	if len(cfg.ResolverPrefixes) != len(DefaultResolverPrefixes) {
		t.Errorf("expected %d default resolver prefixes, got %d", len(DefaultResolverPrefixes), len(cfg.ResolverPrefixes))
	}
	if !cfg.GitignoreEnabled() {
		t.Error("expected gitignore enabled by default")
	}
}

func TestGitignoreEnabled(t *testing.T) {
	cfg := &Config{}
	if !cfg.GitignoreEnabled() {
		t.Error("expected nil UseGitignore to mean enabled")
	}

	disabled := boolPtr(false)
	cfg.UseGitignore = disabled
	if cfg.GitignoreEnabled() {
		t.Error("expected explicit false to disable gitignore")
	}
}
