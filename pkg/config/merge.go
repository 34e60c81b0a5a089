package config

// MergeConfigs merges an override config over a base config. Any field on
// override that is the zero value falls back to the corresponding base
// field, the same fill-in-the-gaps merge applied between file-provided
// values and defaults.
func MergeConfigs(base, override *Config) *Config {
	if base == nil {
		base = DefaultConfig()
	}
	if override == nil {
		return base
	}

	merged := *base

	if len(override.Entries) > 0 {
		merged.Entries = override.Entries
	}
	if override.Verbose {
		merged.Verbose = true
	}
	if override.Loops {
		merged.Loops = true
	}
	if len(override.SearchRoots) > 0 {
		merged.SearchRoots = override.SearchRoots
	}
	if override.OutputDir != "" {
		merged.OutputDir = override.OutputDir
	}
	if len(override.ResolverPrefixes) > 0 {
		merged.ResolverPrefixes = override.ResolverPrefixes
	}
	if override.IgnoreFile != "" {
		merged.IgnoreFile = override.IgnoreFile
	}
	if override.NotFoundFile != "" {
		merged.NotFoundFile = override.NotFoundFile
	}
	if override.UseGitignore != nil {
		merged.UseGitignore = override.UseGitignore
	}
	if override.Clock != "" {
		merged.Clock = override.Clock
	}

	return &merged
}
