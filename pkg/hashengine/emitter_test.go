package hashengine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTextCreatesFile(t *testing.T) {
	dir := t.TempDir()
	e := NewEmitter(dir)

	if err := e.WriteText("sub/out.txt", []byte("hello")); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sub/out.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", string(data))
	}
}

func TestWriteTextSkipsExistingRegularFile(t *testing.T) {
	dir := t.TempDir()
	e := NewEmitter(dir)

	if err := e.WriteText("out.txt", []byte("first")); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if err := e.WriteText("out.txt", []byte("second")); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("expected idempotent write to keep %q, got %q", "first", string(data))
	}
}

func TestCopyBinaryPreservesBytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	if err := os.WriteFile(src, []byte{0x00, 0x01, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewEmitter(filepath.Join(dir, "cache"))
	if err := e.CopyBinary(src, "img/logo.png"); err != nil {
		t.Fatalf("CopyBinary: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cache", "img/logo.png"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 3 || data[2] != 0xff {
		t.Errorf("unexpected copied bytes: %v", data)
	}
}
