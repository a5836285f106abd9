package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.svg")

	if err := WriteFileAtomic(dst, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileAtomic_MissingDirLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "missing", "out.svg")

	if err := WriteFileAtomic(dst, []byte("data"), 0o644); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
	if FileExists(dst) {
		t.Fatal("destination should not exist")
	}
}

func TestWriteFileAtomicMkdir(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a", "b", "out.svg")

	if err := WriteFileAtomicMkdir(dst, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(dst) {
		t.Fatal("expected destination to exist")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Fatal("expected file to exist")
	}
	if FileExists(dir) {
		t.Fatal("directory must not count as a file")
	}
	if FileExists(filepath.Join(dir, "nope")) {
		t.Fatal("missing path must not exist")
	}
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	size, ok, err := FileSize(file)
	if err != nil || !ok || size != 5 {
		t.Fatalf("FileSize = (%d, %v, %v), want (5, true, nil)", size, ok, err)
	}
	_, ok, err = FileSize(filepath.Join(dir, "nope"))
	if err != nil || ok {
		t.Fatalf("FileSize(missing) = (_, %v, %v), want (false, nil)", ok, err)
	}
}
