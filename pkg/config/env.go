package config

import (
	"os"
	"strconv"
	"strings"
)

// envPrefix is the prefix recache looks for when applying environment
// variable overrides.
const envPrefix = "RECACHE_"

// ApplyEnvOverrides applies RECACHE_* environment variable overrides to a
// config in place. Boolean values accept "true"/"1"/"yes" for true and
// "false"/"0"/"no" for false; list values are comma-separated.
func ApplyEnvOverrides(cfg *Config) error {
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, envPrefix) {
			continue
		}
		parts := strings.SplitN(e, "=", 2)
		if len(parts) != 2 {
			continue
		}
		applyEnvOverride(cfg, strings.ToLower(strings.TrimPrefix(parts[0], envPrefix)), parts[1])
	}
	return nil
}

func applyEnvOverride(cfg *Config, key, value string) {
	switch key {
	case "entries":
		cfg.Entries = parseStringList(value)
	case "verbose":
		cfg.Verbose = parseBool(value)
	case "loops":
		cfg.Loops = parseBool(value)
	case "search_roots":
		cfg.SearchRoots = parseStringList(value)
	case "output_dir":
		cfg.OutputDir = value
	case "resolver_prefixes":
		cfg.ResolverPrefixes = parseStringList(value)
	case "ignore_file":
		cfg.IgnoreFile = value
	case "notfound_file":
		cfg.NotFoundFile = value
	case "use_gitignore":
		v := parseBool(value)
		cfg.UseGitignore = &v
	case "clock":
		cfg.Clock = value
	}
}

func parseStringList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true
	case "false", "0", "no", "n":
		return false
	default:
		b, _ := strconv.ParseBool(value)
		return b
	}
}
