package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope", "local.json"))
	if _, ok := s.Get("preferred_language"); ok {
		t.Fatalf("empty store returned a value")
	}
}

func TestSetGet_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	s := Open(path)
	if err := s.Set("preferred_language", "ko"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	reopened := Open(path)
	v, ok := reopened.Get("preferred_language")
	if !ok || v != "ko" {
		t.Fatalf("reopened Get() = (%q, %v), want (ko, true)", v, ok)
	}
}

func TestOpen_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	s := Open(path)
	if _, ok := s.Get("preferred_language"); ok {
		t.Fatalf("corrupt store returned a value")
	}
	if err := s.Set("preferred_language", "fr"); err != nil {
		t.Fatalf("Set() after corrupt open: %v", err)
	}
}
