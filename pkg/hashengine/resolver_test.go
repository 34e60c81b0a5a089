package hashengine

import "testing"

func newTestRegistry(paths ...string) *Registry {
	r := NewRegistry()
	for _, p := range paths {
		r.Add(NewAsset("/src/"+p, p, 10))
	}
	return r
}

func TestResolveAsIs(t *testing.T) {
	r := newTestRegistry("app.js", "index.html")
	referrer, _ := r.Lookup("index.html")
	res := NewResolver(r, nil)

	target := res.Resolve("app.js", referrer)
	if target == nil || target.LogicalPath != "app.js" {
		t.Fatalf("expected app.js, got %v", target)
	}
}

func TestResolveRelativeToReferrerDir(t *testing.T) {
	r := newTestRegistry("css/site.css", "pages/about.html")
	referrer, _ := r.Lookup("pages/about.html")
	res := NewResolver(r, nil)

	target := res.Resolve("../css/site.css", referrer)
	if target == nil || target.LogicalPath != "css/site.css" {
		t.Fatalf("expected css/site.css, got %v", target)
	}
}

func TestResolveFixedPrefix(t *testing.T) {
	r := newTestRegistry("/assets/logo.png", "index.html")
	referrer, _ := r.Lookup("index.html")
	res := NewResolver(r, []string{"/assets/"})

	target := res.Resolve("logo.png", referrer)
	if target == nil || target.LogicalPath != "/assets/logo.png" {
		t.Fatalf("expected /assets/logo.png, got %v", target)
	}
}

func TestResolveChildDirFallback(t *testing.T) {
	r := newTestRegistry("/games/sharedAssets-3js/three/three.min.js", "index.html")
	referrer, _ := r.Lookup("index.html")
	res := NewResolver(r, []string{"/games/sharedAssets-3js/"})

	target := res.Resolve("three.min.js", referrer)
	if target == nil || target.LogicalPath != "/games/sharedAssets-3js/three/three.min.js" {
		t.Fatalf("expected child-dir fallback hit, got %v", target)
	}
}

func TestResolveSelfReferenceSuppressed(t *testing.T) {
	r := newTestRegistry("index.html")
	referrer, _ := r.Lookup("index.html")
	res := NewResolver(r, nil)

	target := res.Resolve("index.html", referrer)
	if target != nil {
		t.Errorf("expected self-reference to be suppressed, got %v", target)
	}
}

func TestResolveUnresolvedWithSlashRecordsNotFound(t *testing.T) {
	r := newTestRegistry("index.html")
	referrer, _ := r.Lookup("index.html")
	res := NewResolver(r, nil)

	target := res.Resolve("/missing/thing.js", referrer)
	if target != nil {
		t.Fatalf("expected unresolved, got %v", target)
	}
	if !res.NotFound()["/missing/thing.js"] {
		t.Errorf("expected /missing/thing.js recorded in not_found")
	}
}

func TestResolveUnresolvedWithoutSlashNotRecorded(t *testing.T) {
	r := newTestRegistry("index.html")
	referrer, _ := r.Lookup("index.html")
	res := NewResolver(r, nil)

	target := res.Resolve("missing.js", referrer)
	if target != nil {
		t.Fatalf("expected unresolved, got %v", target)
	}
	if len(res.NotFound()) != 0 {
		t.Errorf("expected no not_found entries for slash-less candidate, got %v", res.NotFound())
	}
}
