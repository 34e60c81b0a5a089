// Package tests provides integration tests for recache: it drives the
// discover -> hashengine -> emit pipeline end to end over a small tree of
// fixture files, the way recache's build command wires them together.
package tests

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/WaylonWalker/recache/pkg/discover"
	"github.com/WaylonWalker/recache/pkg/hashengine"
)

// fixtureSite writes files (logical path -> content) under a temp source
// directory.
type fixtureSite struct {
	t    *testing.T
	root string
}

func newFixtureSite(t *testing.T, files map[string]string) *fixtureSite {
	t.Helper()
	root := t.TempDir()
	for logical, content := range files {
		full := filepath.Join(root, filepath.FromSlash(logical))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &fixtureSite{t: t, root: root}
}

// build discovers every file under the site, registers it, and runs a
// full orchestrator pass with a pinned clock, returning the orchestrator
// (for NotFound/Processed inspection) and the output directory.
func (s *fixtureSite) build(entries []string) (*hashengine.Orchestrator, string) {
	s.t.Helper()

	files, err := discover.Walk(discover.Options{Root: s.root, Patterns: []string{"**/*"}})
	if err != nil {
		s.t.Fatalf("discover.Walk: %v", err)
	}

	registry := hashengine.NewRegistry()
	for _, f := range files {
		registry.Add(hashengine.NewAsset(f.AbsPath, f.LogicalPath, f.Size))
	}

	outDir := s.t.TempDir()
	resolver := hashengine.NewResolver(registry, hashengine.DefaultResolverPrefixes)
	emitter := hashengine.NewEmitter(outDir)
	o := hashengine.New(registry, resolver, emitter, entries, nil)
	o.Clock = func() time.Time { return time.Unix(0, 0).UTC() }

	if err := o.Run(); err != nil {
		s.t.Fatalf("Run: %v", err)
	}
	return o, outDir
}

// listOutputs walks dir and returns its file contents keyed by the path
// relative to dir, with forward slashes.
func listOutputs(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	out := make(map[string][]byte)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return out
}

// TestCacheDeterministic builds the same fixture tree twice, into two
// separate output directories, and asserts the emitted filenames (which
// embed each asset's content hash) and contents match byte for byte
// across both runs.
func TestCacheDeterministic(t *testing.T) {
	fixture := map[string]string{
		"index.html": `<!doctype html><script src="/app.js"></script><link rel="stylesheet" href="/style.css">`,
		"app.js":     `import "./util.js"; console.log("boot");`,
		"util.js":    `export const id = x => x;`,
		"style.css":  `body { background: url("/img/bg.png"); }`,
		"img/bg.png": "\x89PNG\x01\x02\x03fakebytes",
	}

	site1 := newFixtureSite(t, fixture)
	o1, out1 := site1.build([]string{"index.html"})

	site2 := newFixtureSite(t, fixture)
	o2, out2 := site2.build([]string{"index.html"})

	if o1.Processed() != o2.Processed() {
		t.Errorf("processed count differs: %d vs %d", o1.Processed(), o2.Processed())
	}
	if len(o1.NotFound()) != 0 || len(o2.NotFound()) != 0 {
		t.Errorf("expected no unresolved references, got %v / %v", o1.NotFound(), o2.NotFound())
	}

	outputs1 := listOutputs(t, out1)
	outputs2 := listOutputs(t, out2)

	names1 := sortedKeys(outputs1)
	names2 := sortedKeys(outputs2)
	if len(names1) != len(names2) {
		t.Fatalf("different output file sets:\n  run 1: %v\n  run 2: %v", names1, names2)
	}
	for i, name := range names1 {
		if names2[i] != name {
			t.Fatalf("output file names differ at index %d: %q vs %q", i, name, names2[i])
		}
	}

	for name, data1 := range outputs1 {
		data2 := outputs2[name]
		if string(data1) != string(data2) {
			t.Errorf("content for %s differs across runs", name)
		}
	}
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TestCacheRebuildOverExistingOutputIsIdempotent runs the same build
// twice into the same output directory: the emitter's skip-if-regular-
// file rule means the second run must not alter any already-emitted
// file, even though the orchestrator reprocesses everything from
// scratch.
func TestCacheRebuildOverExistingOutputIsIdempotent(t *testing.T) {
	fixture := map[string]string{
		"index.html": `<script src="/app.js"></script>`,
		"app.js":     `console.log("v1");`,
	}

	site := newFixtureSite(t, fixture)
	files, err := discover.Walk(discover.Options{Root: site.root, Patterns: []string{"**/*"}})
	if err != nil {
		t.Fatalf("discover.Walk: %v", err)
	}

	newOrchestrator := func(outDir string) *hashengine.Orchestrator {
		registry := hashengine.NewRegistry()
		for _, f := range files {
			registry.Add(hashengine.NewAsset(f.AbsPath, f.LogicalPath, f.Size))
		}
		resolver := hashengine.NewResolver(registry, hashengine.DefaultResolverPrefixes)
		emitter := hashengine.NewEmitter(outDir)
		o := hashengine.New(registry, resolver, emitter, []string{"index.html"}, nil)
		o.Clock = func() time.Time { return time.Unix(0, 0).UTC() }
		return o
	}

	outDir := t.TempDir()
	if err := newOrchestrator(outDir).Run(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := listOutputs(t, outDir)

	if err := newOrchestrator(outDir).Run(); err != nil {
		t.Fatalf("second run: %v", err)
	}
	after := listOutputs(t, outDir)

	if len(before) != len(after) {
		t.Fatalf("file count changed across rebuild: %d vs %d", len(before), len(after))
	}
	for name, data := range before {
		if string(after[name]) != string(data) {
			t.Errorf("content for %s changed across an idempotent rebuild", name)
		}
	}
}
