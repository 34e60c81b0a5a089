package config

import "github.com/WaylonWalker/recache/pkg/hashengine"

// Config holds recache's resolved configuration: the core build options
// plus the ambient options a runnable build needs.
type Config struct {
	// Entries is the ordered list of logical paths that keep their
	// original filename in the output and are never descended into
	// mid-recursion.
	Entries []string `toml:"entries" yaml:"entries" json:"entries"`

	// Verbose controls informational logging.
	Verbose bool `toml:"verbose" yaml:"verbose" json:"verbose"`

	// Loops controls cycle-detection logging.
	Loops bool `toml:"loops" yaml:"loops" json:"loops"`

	// SearchRoots is the list of glob patterns passed to the file
	// discovery stage to build the File Registry.
	SearchRoots []string `toml:"search_roots" yaml:"search_roots" json:"search_roots"`

	// OutputDir is the cache output directory.
	OutputDir string `toml:"output_dir" yaml:"output_dir" json:"output_dir"`

	// ResolverPrefixes is the fixed prefix list the path resolver tries,
	// in order, for a candidate that doesn't resolve as-is or relative
	// to its referrer. This is workload-specific, so it is accepted as
	// configuration rather than hardcoded.
	ResolverPrefixes []string `toml:"resolver_prefixes" yaml:"resolver_prefixes" json:"resolver_prefixes"`

	// IgnoreFile is the path to the ignore-list JSON file.
	IgnoreFile string `toml:"ignore_file" yaml:"ignore_file" json:"ignore_file"`

	// NotFoundFile is the path the not-found report is written to.
	NotFoundFile string `toml:"notfound_file" yaml:"notfound_file" json:"notfound_file"`

	// UseGitignore enables .gitignore-aware file discovery. A pointer so
	// that merge can tell "unset in this layer" apart from an explicit
	// false.
	UseGitignore *bool `toml:"use_gitignore" yaml:"use_gitignore" json:"use_gitignore"`

	// Clock pins the timestamp used in the "Updated:" comment line to an
	// RFC3339 value, for reproducible builds. Empty means use the live
	// clock.
	Clock string `toml:"clock" yaml:"clock" json:"clock"`
}

// GitignoreEnabled reports the effective UseGitignore value, treating an
// unset pointer as enabled (the documented default).
func (c *Config) GitignoreEnabled() bool {
	return c.UseGitignore == nil || *c.UseGitignore
}

func boolPtr(b bool) *bool { return &b }

// DefaultResolverPrefixes is the fixed prefix list used when no config
// overrides it, aliased from hashengine so the two packages never drift.
var DefaultResolverPrefixes = hashengine.DefaultResolverPrefixes

// DefaultEntries is the default entry set.
var DefaultEntries = []string{"index.html", "tester.html"}
