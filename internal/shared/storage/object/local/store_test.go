package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPutWritesUnderBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resumes")
	store := New(dir)

	path, size, err := store.Put(context.Background(), "abc-resume.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if path != filepath.Join(dir, "abc-resume.pdf") {
		t.Fatalf("unexpected path %s", path)
	}
	if size != 8 {
		t.Fatalf("expected 8 bytes, got %d", size)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestPutRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../outside.pdf", "/etc/passwd", "", "."} {
		if _, _, err := store.Put(context.Background(), key, strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestPutRefusesOverwrite(t *testing.T) {
	store := New(t.TempDir())
	if _, _, err := store.Put(context.Background(), "same.pdf", strings.NewReader("one")); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if _, _, err := store.Put(context.Background(), "same.pdf", strings.NewReader("two")); err == nil {
		t.Fatalf("expected second Put to fail")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestPutRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if _, _, err := store.Put(context.Background(), "broken.pdf", failingReader{}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected partial file to be removed, stat err=%v", err)
	}
}

func TestPutHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := New(t.TempDir()).Put(ctx, "x.pdf", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
