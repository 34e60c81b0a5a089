// Package listcache caches the list of files discovered from the search
// roots so that repeated runs over an unchanged tree can skip re-walking
// the filesystem. It is an external collaborator to the hashing engine
// core: the core only ever sees the file registry this package (together
// with pkg/discover) hands it.
package listcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CacheVersion is incremented when the cache file format changes.
const CacheVersion = 1

// DefaultCacheDir is the directory the file-list cache is stored under.
const DefaultCacheDir = ".recache"

// CacheFileName is the name of the file-list cache within DefaultCacheDir.
const CacheFileName = "files.json"

// FileInfo records the modification time and size recache last observed
// for a discovered file, used to detect changes cheaply without reading
// file contents.
type FileInfo struct {
	ModTime int64 `json:"mod_time"`
	Size    int64 `json:"size"`
}

// Cache is the on-disk file-list cache.
type Cache struct {
	Version      int                 `json:"version"`
	PatternHash  string              `json:"pattern_hash"`
	GeneratedAt  time.Time           `json:"generated_at"`
	SearchRoots  []string            `json:"search_roots"`
	Files        map[string]FileInfo `json:"files"`

	path string
}

// PatternHash returns a short hash of the search-root patterns, used to
// invalidate the whole cache when the patterns themselves change.
func PatternHash(patterns []string) string {
	joined := strings.Join(patterns, "\n")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])[:12]
}

// Load reads the file-list cache from cacheDir, returning an empty cache
// (not an error) if it doesn't exist yet.
func Load(cacheDir string) (*Cache, error) {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	path := filepath.Join(cacheDir, CacheFileName)

	cache := &Cache{Files: make(map[string]FileInfo), path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cache, nil
		}
		return nil, fmt.Errorf("read file-list cache: %w", err)
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("decode file-list cache: %w", err)
	}
	if cache.Files == nil {
		cache.Files = make(map[string]FileInfo)
	}
	cache.path = path
	return cache, nil
}

// Save writes the cache back to disk, creating the cache directory if
// needed.
func (c *Cache) Save() error {
	if c.path == "" {
		c.path = filepath.Join(DefaultCacheDir, CacheFileName)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create file-list cache dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode file-list cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write file-list cache: %w", err)
	}
	return nil
}

// Stale reports whether the cache was built from a different set of
// search-root patterns (or an older cache format) and should be discarded
// rather than diffed against.
func (c *Cache) Stale(patternHash string) bool {
	return c.Version != CacheVersion || c.PatternHash != patternHash
}

// Refresh stats every path in files (rooted at root) and compares it
// against the cached FileInfo, returning the updated FileInfo map and the
// subset of paths whose mtime or size changed since the last run.
func Refresh(root string, files []string, cached map[string]FileInfo) (current map[string]FileInfo, changed []string, err error) {
	current = make(map[string]FileInfo, len(files))

	for _, f := range files {
		full := filepath.Join(root, f)
		stat, statErr := os.Stat(full)
		if statErr != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", f, statErr)
		}

		info := FileInfo{ModTime: stat.ModTime().UnixNano(), Size: stat.Size()}
		current[f] = info

		if prior, ok := cached[f]; !ok || prior.ModTime != info.ModTime || prior.Size != info.Size {
			changed = append(changed, f)
		}
	}

	return current, changed, nil
}

// Update replaces the cache's Files, PatternHash, SearchRoots and
// GeneratedAt fields in preparation for Save.
func (c *Cache) Update(patternHash string, searchRoots []string, files map[string]FileInfo, now time.Time) {
	c.Version = CacheVersion
	c.PatternHash = patternHash
	c.SearchRoots = append([]string(nil), searchRoots...)
	c.Files = files
	c.GeneratedAt = now
}
