package atomicfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFile_ReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.tskln")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := WriteFile(path, []byte("new content"), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "new content" {
		t.Errorf("content = %q, want %q", got, "new content")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.tskln")

	if err := WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "demo.tskln" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want [demo.tskln]", names)
	}
}

func TestWriteFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "demo.tskln")
	if err := WriteFile(path, []byte("x"), 0644); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.tskln")

	if err := Create(path, []byte("first"), 0644); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	err := Create(path, []byte("second"), 0644)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("second Create() error = %v, want fs.ErrExist", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "first" {
		t.Errorf("content = %q, want %q", got, "first")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.tskln")

	if ok, err := Exists(path); ok || err != nil {
		t.Errorf("Exists() = %v, %v before create, want false, nil", ok, err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if ok, err := Exists(path); !ok || err != nil {
		t.Errorf("Exists() = %v, %v after create, want true, nil", ok, err)
	}
}

func TestExists_NameTooLong(t *testing.T) {
	path := filepath.Join(t.TempDir(), strings.Repeat("a", 300))

	ok, err := Exists(path)
	if ok {
		t.Error("Exists() = true for an over-long name")
	}
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Exists() error = %v, want a non-not-exist error", err)
	}
}
