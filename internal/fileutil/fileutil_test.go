package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.mp4")
	if ok, err := Exists(missing); err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}

	empty := filepath.Join(dir, "empty.mp4")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if ok, err := Exists(empty); err != nil || ok {
		t.Fatalf("expected empty file to count as absent, got %v, %v", ok, err)
	}

	full := filepath.Join(dir, "full.mp4")
	if err := os.WriteFile(full, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if ok, err := Exists(full); err != nil || !ok {
		t.Fatalf("Exists(full) = %v, %v", ok, err)
	}

	if _, err := Exists(dir); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestTempSiblingKeepsExtension(t *testing.T) {
	got := TempSibling("/data/video/Ocean/Ocean_sub.mp4")
	want := "/data/video/Ocean/.Ocean_sub.partial.mp4"
	if got != want {
		t.Fatalf("TempSibling = %q, want %q", got, want)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "JSON", "Ocean", "Ocean.json")
	if err := WriteFileAtomic(path, []byte(`{"title":"Ocean"}`), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if !SameContent(path, []byte(`{"title":"Ocean"}`)) {
		t.Fatal("expected written content")
	}
	if SameContent(path, []byte(`{}`)) {
		t.Fatal("expected mismatch for different content")
	}
	if _, err := os.Stat(TempSibling(path)); !os.IsNotExist(err) {
		t.Fatalf("expected temp sibling to be gone, got %v", err)
	}
}

func TestPromoteRemovesTempOnFailure(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, ".out.partial.mp4")
	if err := os.WriteFile(tmp, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "missing-dir", "out.mp4")
	if err := Promote(tmp, dst); err == nil {
		t.Fatal("expected error promoting into missing directory")
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, got %v", err)
	}
}
