package store

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func touchFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTouchAndList(t *testing.T) {
	h := openTestHistory(t)
	dir := t.TempDir()
	a := touchFile(t, dir, "a.ipynb")
	b := touchFile(t, dir, "b.ipynb")

	if err := h.Touch(a, 3); err != nil {
		t.Fatal(err)
	}
	if err := h.Touch(b, 0); err != nil {
		t.Fatal(err)
	}

	files, err := h.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}

	if got := h.LastCell(a); got != 3 {
		t.Fatalf("LastCell=%d, want 3", got)
	}
	if got := h.LastCell(filepath.Join(dir, "missing.ipynb")); got != 0 {
		t.Fatalf("LastCell of unknown file=%d, want 0", got)
	}
}

func TestTouchUpdatesExistingEntry(t *testing.T) {
	h := openTestHistory(t)
	a := touchFile(t, t.TempDir(), "a.ipynb")

	if err := h.Touch(a, 1); err != nil {
		t.Fatal(err)
	}
	if err := h.Touch(a, 7); err != nil {
		t.Fatal(err)
	}

	count, err := h.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("count=%d, want 1 (no duplicate rows)", count)
	}
	if got := h.LastCell(a); got != 7 {
		t.Fatalf("LastCell=%d, want the latest value 7", got)
	}

	files, err := h.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if files[0].OpenCount != 2 {
		t.Fatalf("OpenCount=%d, want 2", files[0].OpenCount)
	}
}

func TestListSkipsDeletedFiles(t *testing.T) {
	h := openTestHistory(t)
	dir := t.TempDir()
	kept := touchFile(t, dir, "kept.ipynb")
	gone := touchFile(t, dir, "gone.ipynb")

	if err := h.Touch(kept, 0); err != nil {
		t.Fatal(err)
	}
	if err := h.Touch(gone, 0); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	files, err := h.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != kept {
		t.Fatalf("files=%v, want only the surviving path", files)
	}
}
