package hashengine

import (
	"path"
	"strings"
)

// textualExtensions is the set of extensions treated as textual (scanned
// and rewritten) rather than opaque (copied as bytes).
var textualExtensions = map[string]bool{
	".js":   true,
	".mjs":  true,
	".html": true,
	".css":  true,
	".dae":  true,
	".json": true,
}

// maxTextualBytes is the size above which a textual-extension file is
// nonetheless treated as opaque and copied as bytes.
const maxTextualBytes = 5 * 1024 * 1024

// Asset is a registered file, immutable except for its derived hash
// fields which the Orchestrator populates as it processes the file.
type Asset struct {
	// OriginalPath is the on-disk path to the file.
	OriginalPath string

	// LogicalPath is the URL-relative path by which the file is
	// referenced from other files.
	LogicalPath string

	// Base is LogicalPath without its extension.
	Base string

	// Extension is the file's extension, including the leading dot.
	Extension string

	// IsTextual is true iff Extension is one of the recognized textual
	// extensions and the file is smaller than maxTextualBytes.
	IsTextual bool

	// Derived hash fields, populated by the Orchestrator.
	PlainHash  string
	MerkleHash string
	OutputPath string
}

// NewAsset constructs an Asset from its on-disk path, logical path, and
// size in bytes. Hash fields start empty; the Orchestrator fills them
// in. The Resolver's directory-aware fallback gets an asset's sibling
// directories from Registry.ChildDirNames instead of a per-asset field,
// since that fallback always needs the children of one fixed directory
// (the first resolver prefix), not of each referrer's own directory.
func NewAsset(originalPath, logicalPath string, size int64) *Asset {
	ext := path.Ext(logicalPath)
	base := strings.TrimSuffix(logicalPath, ext)

	return &Asset{
		OriginalPath: originalPath,
		LogicalPath:  logicalPath,
		Base:         base,
		Extension:    ext,
		IsTextual:    textualExtensions[strings.ToLower(ext)] && size < maxTextualBytes,
	}
}

// Registry is the file registry: a mapping from logical path to Asset.
// Each Asset is entered under both "p/q" and "/p/q"; keys are unique
// after first-wins insertion. The core treats the Registry as read-only
// once bootstrap (population by an external enumerator) is complete.
type Registry struct {
	assets map[string]*Asset
	// order preserves first-insertion order of distinct assets, used to
	// derive deterministic directory child listings.
	order []*Asset
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{assets: make(map[string]*Asset)}
}

// Add registers an asset under both its logical path and the other form
// of that path (with the leading "/" added, or removed if already
// absolute). First registration for a given key wins; later collisions
// are silently ignored.
func (r *Registry) Add(a *Asset) {
	keys := []string{a.LogicalPath}
	if !strings.HasPrefix(a.LogicalPath, "/") {
		keys = append(keys, "/"+a.LogicalPath)
	} else {
		keys = append(keys, strings.TrimPrefix(a.LogicalPath, "/"))
	}

	registered := false
	for _, k := range keys {
		if _, exists := r.assets[k]; !exists {
			r.assets[k] = a
			registered = true
		}
	}
	if registered {
		r.order = append(r.order, a)
	}
}

// Lookup returns the Asset registered at logicalPath, if any.
func (r *Registry) Lookup(logicalPath string) (*Asset, bool) {
	a, ok := r.assets[logicalPath]
	return a, ok
}

// ChildDirNames returns the deduplicated set of immediate child
// directory names of dir, in first-seen insertion order (not sorted),
// as observed from every asset's logical path. A leading "/" on dir or on
// a logical path is ignored, matching the Registry's dual-key lookup.
// This backs the Resolver's directory-aware fallback, which needs the
// child directories of a single fixed directory rather than of each
// referrer's own containing directory.
func (r *Registry) ChildDirNames(dir string) []string {
	dir = strings.Trim(dir, "/")
	seen := make(map[string]bool)
	var names []string

	for _, a := range r.order {
		rest := strings.TrimPrefix(a.LogicalPath, "/")
		if dir != "" {
			if !strings.HasPrefix(rest, dir+"/") {
				continue
			}
			rest = strings.TrimPrefix(rest, dir+"/")
		}
		if idx := strings.Index(rest, "/"); idx > 0 {
			name := rest[:idx]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names
}
