package hashengine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Emitter writes rewritten text files and copies opaque binary files
// into the output cache, atomically and idempotently.
type Emitter struct {
	// OutputDir is the root of the output cache directory.
	OutputDir string
}

// NewEmitter creates an Emitter rooted at outputDir.
func NewEmitter(outputDir string) *Emitter {
	return &Emitter{OutputDir: outputDir}
}

// WriteText writes data to path (relative to OutputDir), creating
// intermediate directories, via a temporary sibling file and rename.
// If the target already exists as a regular file, the write is skipped.
func (e *Emitter) WriteText(relPath string, data []byte) error {
	full := filepath.Join(e.OutputDir, relPath)
	return e.atomicWrite(full, func(tmp string) error {
		return os.WriteFile(tmp, data, 0o644)
	})
}

// CopyBinary copies the file at src to dst (relative to OutputDir), via
// a temporary sibling and rename. If the target already exists as a
// regular file, the copy is skipped.
func (e *Emitter) CopyBinary(src, relDst string) error {
	full := filepath.Join(e.OutputDir, relDst)
	return e.atomicWrite(full, func(tmp string) error {
		in, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer in.Close()

		out, err := os.Create(tmp)
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer out.Close()

		if _, err := io.Copy(out, in); err != nil {
			return fmt.Errorf("copy bytes: %w", err)
		}
		return out.Close()
	})
}

// atomicWrite skips writing if dst already exists as a regular file;
// otherwise it stages content (written by fill, into a sibling path in
// dst's own directory so rename stays on one filesystem) and renames it
// into place, unlinking any stale non-regular target first.
func (e *Emitter) atomicWrite(dst string, fill func(tmp string) error) error {
	if info, err := os.Stat(dst); err == nil && info.Mode().IsRegular() {
		return nil
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("emit_error: create dir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(dst)+".tmp."+strconv.Itoa(os.Getpid()))
	if err := fill(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("emit_error: write %s: %w", dst, err)
	}

	_ = os.Remove(dst)
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("emit_error: rename into %s: %w", dst, err)
	}
	return nil
}
