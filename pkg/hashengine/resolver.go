package hashengine

import (
	"path"
	"strings"
)

// DefaultResolverPrefixes is the fixed prefix list used when a config
// doesn't override it, carried over unchanged so a default run stays
// bit-exact against the original asset layout it was modeled on.
var DefaultResolverPrefixes = []string{
	"/games/sharedAssets-3js/",
	"/games/sharedAssets-3js/particles/",
	"/games/sharedAssets-3js/particles/particles128/",
	"/games/",
	"/games/libs-3js/thrax/",
	"/games/libs-3js/examples/js/",
	"/games/libs-3js/thrax/three86/",
	"/assets/",
}

// Resolver implements the four-step path-resolution policy: given a
// candidate string found in a referrer, it returns the registered Asset
// it points at, or reports the candidate as unresolved.
type Resolver struct {
	registry *Registry

	// prefixes is the ordered fixed prefix list tried at step 3. The
	// first entry also anchors step 4's child-directory fallback, since
	// step 4 searches child directories of the same directory that
	// heads the prefix list.
	prefixes []string

	notFound map[string]bool
}

// NewResolver builds a Resolver against registry, trying prefixes (in
// order) at resolution step 3.
func NewResolver(registry *Registry, prefixes []string) *Resolver {
	return &Resolver{
		registry: registry,
		prefixes: prefixes,
		notFound: make(map[string]bool),
	}
}

// NotFound returns the accumulated set of candidates that failed
// resolution and contained a "/", for the end-of-run not-found report.
func (res *Resolver) NotFound() map[string]bool {
	return res.notFound
}

// Resolve attempts to resolve candidate as referenced from referrer,
// returning the target Asset, or nil if unresolved. A resolution whose
// logical path equals the referrer's is treated as unresolved
// (self-reference suppression) and is never recorded in NotFound.
func (res *Resolver) Resolve(candidate string, referrer *Asset) *Asset {
	dir := path.Dir(referrer.LogicalPath)

	if a := res.tryAll(candidate, dir); a != nil {
		if a.LogicalPath == referrer.LogicalPath {
			return nil
		}
		return a
	}

	if strings.Contains(candidate, "/") {
		res.notFound[candidate] = true
	}
	return nil
}

func (res *Resolver) tryAll(candidate, dir string) *Asset {
	// Step 1: as-is.
	if a, ok := res.registry.Lookup(candidate); ok {
		return a
	}

	// Step 2: resolved against the referrer's logical directory,
	// supporting "./" and any number of leading "../".
	if resolved, ok := joinLogical(dir, candidate); ok {
		if a, ok := res.registry.Lookup(resolved); ok {
			return a
		}
	}

	// Step 3: under each fixed prefix, in order.
	for _, prefix := range res.prefixes {
		if a, ok := res.registry.Lookup(prefix + strings.TrimPrefix(candidate, "/")); ok {
			return a
		}
	}

	// Step 4: under each immediate child directory of the first prefix
	// (with its trailing slash trimmed), in the Registry's insertion
	// order.
	if len(res.prefixes) > 0 {
		base := strings.TrimSuffix(res.prefixes[0], "/")
		for _, child := range res.registry.ChildDirNames(base) {
			if a, ok := res.registry.Lookup(base + "/" + child + "/" + strings.TrimPrefix(candidate, "/")); ok {
				return a
			}
		}
	}

	return nil
}

// joinLogical resolves candidate against base, a logical directory,
// popping one segment off base for each leading "../" and stripping a
// leading "./". Returns false if candidate is absolute (starts with "/"),
// since resolving it against base gives the candidate itself, already
// tried at step 1.
func joinLogical(base, candidate string) (string, bool) {
	if strings.HasPrefix(candidate, "/") {
		return "", false
	}

	segments := strings.Split(strings.Trim(base, "/"), "/")
	rest := candidate
	for strings.HasPrefix(rest, "../") {
		rest = strings.TrimPrefix(rest, "../")
		if len(segments) > 0 {
			segments = segments[:len(segments)-1]
		}
	}
	rest = strings.TrimPrefix(rest, "./")

	joined := path.Join(strings.Join(segments, "/"), rest)
	if strings.HasPrefix(base, "/") {
		joined = "/" + joined
	}
	return joined, true
}
