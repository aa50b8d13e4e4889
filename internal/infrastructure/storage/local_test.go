package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore returned error: %v", err)
	}

	path, err := store.Save(strings.NewReader("image-bytes"), "photo.JPG")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("expected lowercased extension to be kept, got %s", path)
	}
	if strings.Contains(filepath.Base(path), "photo") {
		t.Fatalf("original filename must not reach disk: %s", path)
	}

	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestLocalStore_Save_UniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore returned error: %v", err)
	}

	first, err := store.Save(strings.NewReader("a"), "same.png")
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := store.Save(strings.NewReader("b"), "same.png")
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct stored paths, both were %s", first)
	}
}

func TestNewLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewLocalStore(dir); err != nil {
		t.Fatalf("NewLocalStore returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload directory missing: %v", err)
	}
}
