// Package discover enumerates the on-disk files that make up the file
// registry: it walks the configured search roots with doublestar glob
// patterns, honors .gitignore, and hands the resulting
// logical-path/on-disk-path pairs to the caller for registration with
// hashengine.Registry. It is an external collaborator to the core, not
// part of it.
package discover

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one discovered file: its logical path (relative to root, with
// forward slashes) and its absolute on-disk path.
type File struct {
	LogicalPath string
	AbsPath     string
	Size        int64
}

// Options configures a Walk.
type Options struct {
	// Root is the directory search patterns are evaluated against.
	Root string
	// Patterns are doublestar glob patterns, relative to Root.
	Patterns []string
	// UseGitignore enables .gitignore-based exclusion, read from Root.
	UseGitignore bool
}

// Walk finds every file under opts.Root matching any of opts.Patterns,
// excluding .gitignore matches when enabled, and returns them sorted by
// logical path for deterministic ordering.
func Walk(opts Options) ([]File, error) {
	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	var ignorePatterns []string
	if opts.UseGitignore {
		ignorePatterns, err = loadGitignore(absRoot)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{})
	var files []File

	for _, pattern := range opts.Patterns {
		fullPattern := pattern
		if !filepath.IsAbs(pattern) {
			fullPattern = filepath.Join(absRoot, pattern)
		}

		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			rel, err := filepath.Rel(absRoot, match)
			if err != nil {
				rel = match
			}
			logical := filepath.ToSlash(rel)

			if isIgnored(logical, ignorePatterns) {
				continue
			}
			if _, dup := seen[logical]; dup {
				continue
			}
			seen[logical] = struct{}{}

			files = append(files, File{LogicalPath: logical, AbsPath: match, Size: info.Size()})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].LogicalPath < files[j].LogicalPath })
	return files, nil
}

func loadGitignore(root string) ([]string, error) {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		patterns = append(patterns, strings.TrimSuffix(line, "/"))
	}
	return patterns, scanner.Err()
}

func isIgnored(logicalPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, logicalPath); matched {
			return true
		}
		if strings.HasPrefix(logicalPath, pattern+"/") {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(logicalPath)); matched {
			return true
		}
		if !strings.HasPrefix(pattern, "**/") {
			if matched, _ := doublestar.Match("**/"+pattern, logicalPath); matched {
				return true
			}
		}
	}
	return false
}
