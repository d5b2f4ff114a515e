package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.json")

	if err := AtomicWrite(path, []byte(`{"a":1}`), 0600); err != nil {
		t.Fatalf("AtomicWrite() error: %v", err)
	}
	if err := AtomicWrite(path, []byte(`{"a":2}`), 0600); err != nil {
		t.Fatalf("AtomicWrite() replace error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"a":2}` {
		t.Fatalf("content = %q, want %q", data, `{"a":2}`)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestAtomicWrite_RefusesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	link := filepath.Join(dir, "link.json")
	if err := os.WriteFile(target, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := AtomicWrite(link, []byte("y"), 0600); err == nil {
		t.Fatalf("expected symlink destination to be rejected")
	}
}
