package config

import "fmt"

// ValidateConfig checks a Config for internal consistency, returning one
// ConfigError per problem. Callers treat most of these as warnings
// rather than fatal errors.
func ValidateConfig(cfg *Config) []error {
	var errs []error

	if len(cfg.Entries) == 0 {
		errs = append(errs, &ConfigError{
			Field:   "entries",
			Message: "no entry points configured; nothing will be emitted with a stable filename",
			Fix:     GetFixSuggestion("empty_entries", "entries", ""),
		})
	}

	if len(cfg.SearchRoots) == 0 {
		errs = append(errs, &ConfigError{
			Field:   "search_roots",
			Message: "no search roots configured; the file registry will be empty",
			Fix:     GetFixSuggestion("empty_search_roots", "search_roots", ""),
		})
	}

	if cfg.OutputDir == "" {
		errs = append(errs, &ConfigError{
			Field:   "output_dir",
			Message: "output directory must not be empty",
			Fix:     `output_dir = "cache"`,
		})
	}

	seen := make(map[string]bool, len(cfg.Entries))
	for _, e := range cfg.Entries {
		if seen[e] {
			errs = append(errs, &ConfigError{
				Field:   "entries",
				Value:   e,
				Message: fmt.Sprintf("duplicate entry %q", e),
				IsWarn:  true,
			})
		}
		seen[e] = true
	}

	return errs
}
