package catalog

import (
	"testing"

	"github.com/oukeidos/caplet/internal/language"
)

func TestGet_EveryLanguageHasCaptions(t *testing.T) {
	for code := range language.Languages {
		b := Get(code)
		if b == nil {
			t.Fatalf("Get(%q) returned nil bundle", code)
		}
		if len(b.Captions) == 0 {
			t.Fatalf("language %q has no sample captions", code)
		}
	}
}

func TestGet_UnknownCodeFallsBack(t *testing.T) {
	b := Get("xx")
	if b == nil || b.Code != language.Default {
		t.Fatalf("unknown code should fall back to the default bundle, got %+v", b)
	}
}

func TestString_FallsBackToDefaultBundle(t *testing.T) {
	// Russian has captions but no UI string table; keys must resolve
	// through the default bundle.
	if got := String("ru", KeySubtitles); got != "Subtitles" {
		t.Fatalf("String(ru, subtitles) = %q, want default-language fallback", got)
	}
	// A key absent everywhere resolves to itself.
	if got := String("en", "no_such_key"); got != "no_such_key" {
		t.Fatalf("String(en, no_such_key) = %q", got)
	}
}

func TestString_LocalizedLookup(t *testing.T) {
	if got := String("pt", KeyPassword); got != "Senha" {
		t.Fatalf("String(pt, password) = %q, want %q", got, "Senha")
	}
}
