package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Entries:          append([]string(nil), DefaultEntries...),
		Verbose:          false,
		Loops:            false,
		SearchRoots:      []string{"**/*"},
		OutputDir:        "cache",
		ResolverPrefixes: append([]string(nil), DefaultResolverPrefixes...),
		IgnoreFile:       "recache.ignore",
		NotFoundFile:     "recache.notfound",
		UseGitignore:     boolPtr(true),
		Clock:            "",
	}
}
