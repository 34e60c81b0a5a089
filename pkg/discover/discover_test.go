package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkFindsMatchingFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "<html></html>")
	writeFile(t, root, "js/app.js", "console.log(1);")

	files, err := Walk(Options{Root: root, Patterns: []string{"**/*"}})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if files[0].LogicalPath != "index.html" || files[1].LogicalPath != "js/app.js" {
		t.Errorf("unexpected file set: %v", files)
	}
}

func TestWalkHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "<html></html>")
	writeFile(t, root, "dist/bundle.js", "ignored")
	writeFile(t, root, ".gitignore", "dist\n")

	files, err := Walk(Options{Root: root, Patterns: []string{"**/*"}, UseGitignore: true})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for _, f := range files {
		if f.LogicalPath == "dist/bundle.js" {
			t.Errorf("expected dist/bundle.js to be excluded by .gitignore, got %v", files)
		}
	}
}
