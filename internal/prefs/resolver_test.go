package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/oukeidos/caplet/internal/docstore"
	"github.com/oukeidos/caplet/internal/identity"
	"github.com/oukeidos/caplet/internal/language"
)

type fakeDurable struct {
	record   *docstore.Record
	getErr   error
	mergeErr error
	merged   []docstore.Record
}

func (f *fakeDurable) Get(ctx context.Context, id string) (*docstore.Record, error) {
	return f.record, f.getErr
}

func (f *fakeDurable) Merge(ctx context.Context, id string, rec docstore.Record) error {
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.merged = append(f.merged, rec)
	return nil
}

type fakeLocal struct {
	values map[string]string
	setErr error
}

func newFakeLocal() *fakeLocal { return &fakeLocal{values: map[string]string{}} }

func (f *fakeLocal) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeLocal) Set(key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

type fakeGeo struct {
	country string
	ok      bool
	calls   int
}

func (f *fakeGeo) Country(ctx context.Context) (string, bool) {
	f.calls++
	return f.country, f.ok
}

var brazilOnly = map[string]language.Code{"BR": "pt"}

func newResolver(d *fakeDurable, l *fakeLocal, locale string, g *fakeGeo) *Resolver {
	return NewResolver(d, l, func() string { return locale }, g, brazilOnly, language.Default)
}

func signedIn() *identity.Identity {
	return &identity.Identity{ID: "u1", Email: "a@b.co"}
}

func TestResolve_DurableRecordWins(t *testing.T) {
	d := &fakeDurable{record: &docstore.Record{Language: "ko"}}
	l := newFakeLocal()
	l.values[LocalKey] = "de"
	g := &fakeGeo{country: "BR", ok: true}

	code, source := newResolver(d, l, "fr-FR", g).Resolve(context.Background(), signedIn())
	if code != "ko" || source != SourceAccount {
		t.Fatalf("Resolve() = (%q, %q), want (ko, account)", code, source)
	}
	if g.calls != 0 {
		t.Fatalf("geolocation consulted despite account preference")
	}
	if len(d.merged) != 0 {
		t.Fatalf("account-sourced language must not be written back")
	}
}

func TestResolve_UnsupportedDurableFallsThrough(t *testing.T) {
	d := &fakeDurable{record: &docstore.Record{Language: "tlh"}}
	l := newFakeLocal()
	l.values[LocalKey] = "de"

	code, source := newResolver(d, l, "", &fakeGeo{}).Resolve(context.Background(), signedIn())
	if code != "de" || source != SourceLocal {
		t.Fatalf("Resolve() = (%q, %q), want (de, local)", code, source)
	}
}

func TestResolve_LocalStoreForSignedOut(t *testing.T) {
	l := newFakeLocal()
	l.values[LocalKey] = "ja"
	g := &fakeGeo{country: "BR", ok: true}

	code, source := newResolver(&fakeDurable{}, l, "fr-FR", g).Resolve(context.Background(), nil)
	if code != "ja" || source != SourceLocal {
		t.Fatalf("Resolve() = (%q, %q), want (ja, local)", code, source)
	}
	if g.calls != 0 {
		t.Fatalf("geolocation consulted despite local preference")
	}
}

func TestResolve_LocaleSkipsNetwork(t *testing.T) {
	g := &fakeGeo{country: "BR", ok: true}
	code, source := newResolver(&fakeDurable{}, newFakeLocal(), "pt-BR", g).Resolve(context.Background(), nil)
	if code != "pt" || source != SourceLocale {
		t.Fatalf("Resolve() = (%q, %q), want (pt, locale)", code, source)
	}
	if g.calls != 0 {
		t.Fatalf("no network call may happen when the locale resolves")
	}
}

func TestResolve_GeolocationMapping(t *testing.T) {
	g := &fakeGeo{country: "BR", ok: true}
	code, source := newResolver(&fakeDurable{}, newFakeLocal(), "xx-YY", g).Resolve(context.Background(), nil)
	if code != "pt" || source != SourceGeo {
		t.Fatalf("Resolve() = (%q, %q), want (pt, geolocation)", code, source)
	}
	if g.calls != 1 {
		t.Fatalf("geolocation called %d times, want exactly 1", g.calls)
	}
}

func TestResolve_GeoFailureFallsBackToDefault(t *testing.T) {
	g := &fakeGeo{ok: false}
	code, source := newResolver(&fakeDurable{}, newFakeLocal(), "", g).Resolve(context.Background(), nil)
	if code != language.Default || source != SourceDefault {
		t.Fatalf("Resolve() = (%q, %q), want (en, default)", code, source)
	}
}

func TestResolve_UnmappedCountryFallsBackToDefault(t *testing.T) {
	g := &fakeGeo{country: "AQ", ok: true}
	code, source := newResolver(&fakeDurable{}, newFakeLocal(), "", g).Resolve(context.Background(), nil)
	if code != language.Default || source != SourceDefault {
		t.Fatalf("Resolve() = (%q, %q), want (en, default)", code, source)
	}
}

func TestResolve_ConfiguredFallbackLanguage(t *testing.T) {
	r := NewResolver(&fakeDurable{}, newFakeLocal(), func() string { return "" }, &fakeGeo{}, brazilOnly, "fr")
	code, source := r.Resolve(context.Background(), nil)
	if code != "fr" || source != SourceDefault {
		t.Fatalf("Resolve() = (%q, %q), want (fr, default)", code, source)
	}
	if r.Current() != "fr" {
		t.Fatalf("current = %q, want the configured fallback", r.Current())
	}
}

func TestNewResolver_UnsupportedFallbackReplaced(t *testing.T) {
	r := NewResolver(&fakeDurable{}, newFakeLocal(), func() string { return "" }, &fakeGeo{}, brazilOnly, "tlh")
	code, source := r.Resolve(context.Background(), nil)
	if code != language.Default || source != SourceDefault {
		t.Fatalf("Resolve() = (%q, %q), want (en, default)", code, source)
	}
}

func TestResolve_WritesBackDetectedLanguageWhenSignedIn(t *testing.T) {
	d := &fakeDurable{}
	code, _ := newResolver(d, newFakeLocal(), "de-AT", &fakeGeo{}).Resolve(context.Background(), signedIn())
	if code != "de" {
		t.Fatalf("code = %q", code)
	}
	if len(d.merged) != 1 || d.merged[0].Language != "de" {
		t.Fatalf("detected language not merged back: %+v", d.merged)
	}
}

func TestResolve_WritebackFailureIsSilent(t *testing.T) {
	d := &fakeDurable{mergeErr: errors.New("store down")}
	code, _ := newResolver(d, newFakeLocal(), "de-AT", &fakeGeo{}).Resolve(context.Background(), signedIn())
	if code != "de" {
		t.Fatalf("background write failure must not change the outcome, got %q", code)
	}
}

func TestSetLanguage_PersistsLocallyAndNotifies(t *testing.T) {
	l := newFakeLocal()
	r := newResolver(&fakeDurable{}, l, "", &fakeGeo{})

	var notified language.Code
	r.SetOnChange(func(c language.Code) { notified = c })

	if err := r.SetLanguage(context.Background(), nil, "it"); err != nil {
		t.Fatalf("SetLanguage() error: %v", err)
	}
	if r.Current() != "it" || notified != "it" {
		t.Fatalf("current = %q, notified = %q", r.Current(), notified)
	}
	if l.values[LocalKey] != "it" {
		t.Fatalf("local store = %q, want it", l.values[LocalKey])
	}
}

func TestSetLanguage_DurableFailureSurfacesWithoutRevert(t *testing.T) {
	d := &fakeDurable{mergeErr: errors.New("store down")}
	r := newResolver(d, newFakeLocal(), "", &fakeGeo{})

	err := r.SetLanguage(context.Background(), signedIn(), "fr")
	if err == nil {
		t.Fatalf("durable failure on explicit override must surface")
	}
	if r.Current() != "fr" {
		t.Fatalf("language reverted to %q; override must stand", r.Current())
	}
}

func TestSetLanguage_WinsOverOutstandingResolution(t *testing.T) {
	d := &fakeDurable{record: &docstore.Record{Language: "ko"}}
	r := newResolver(d, newFakeLocal(), "", &fakeGeo{})

	// Simulate the race: the override lands between a resolution pass
	// reading its inputs and applying its outcome.
	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()

	if err := r.SetLanguage(context.Background(), nil, "it"); err != nil {
		t.Fatal(err)
	}
	if r.apply(gen, "ko") {
		t.Fatalf("stale resolution pass must not apply")
	}
	if r.Current() != "it" {
		t.Fatalf("current = %q, want the user override to stand", r.Current())
	}
}

// overridingGeo fires a user override in the middle of a resolution
// pass, after the pass has read its inputs.
type overridingGeo struct {
	r *Resolver
}

func (g *overridingGeo) Country(ctx context.Context) (string, bool) {
	_ = g.r.SetLanguage(ctx, nil, "it")
	return "BR", true
}

func TestResolve_SupersededPassReportsOverrideSource(t *testing.T) {
	g := &overridingGeo{}
	r := NewResolver(&fakeDurable{}, newFakeLocal(), func() string { return "" }, g, brazilOnly, language.Default)
	g.r = r

	code, source := r.Resolve(context.Background(), nil)
	if code != "it" || source != SourceOverride {
		t.Fatalf("Resolve() = (%q, %q), want (it, override)", code, source)
	}
	if r.Current() != "it" {
		t.Fatalf("current = %q, want the user override to stand", r.Current())
	}
}

func TestSetLanguage_UnsupportedCodeIgnored(t *testing.T) {
	r := newResolver(&fakeDurable{}, newFakeLocal(), "", &fakeGeo{})
	if err := r.SetLanguage(context.Background(), nil, "tlh"); err != nil {
		t.Fatalf("unsupported override should be a logged no-op, got %v", err)
	}
	if r.Current() != language.Default {
		t.Fatalf("current = %q", r.Current())
	}
}
