// Package prefs resolves which display language the overlay presents.
package prefs

import (
	"context"
	"sync"

	"github.com/oukeidos/caplet/internal/docstore"
	"github.com/oukeidos/caplet/internal/identity"
	"github.com/oukeidos/caplet/internal/language"
	"github.com/oukeidos/caplet/internal/logger"
)

// LocalKey is the fixed ephemeral-store key holding the language
// preference of logged-out visitors.
const LocalKey = "preferred_language"

// DurableStore is the per-identity record store.
type DurableStore interface {
	Get(ctx context.Context, identityID string) (*docstore.Record, error)
	Merge(ctx context.Context, identityID string, record docstore.Record) error
}

// LocalStore is the ephemeral key/value store.
type LocalStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// GeoLookup resolves the visitor's country, best effort.
type GeoLookup interface {
	Country(ctx context.Context) (string, bool)
}

// Source names the resolution step that decided the language.
type Source string

const (
	SourceAccount  Source = "account"
	SourceLocal    Source = "local"
	SourceLocale   Source = "locale"
	SourceGeo      Source = "geolocation"
	SourceDefault  Source = "default"
	SourceOverride Source = "override"
)

// Resolver owns the effective display language. Resolve runs the strict
// priority chain on every identity change; SetLanguage is the user
// override and always wins over an in-flight resolution pass.
type Resolver struct {
	durable   DurableStore
	local     LocalStore
	locale    func() string
	geo       GeoLookup
	countries map[string]language.Code
	fallback  language.Code

	mu       sync.Mutex
	current  language.Code
	gen      uint64
	onChange func(language.Code)
}

// NewResolver builds a resolver whose final fallback step yields
// fallback, typically the configured default language. An unsupported
// fallback is replaced with the built-in default.
func NewResolver(durable DurableStore, local LocalStore, locale func() string, geo GeoLookup, countries map[string]language.Code, fallback language.Code) *Resolver {
	if !language.Supported(fallback) {
		fallback = language.Default
	}
	return &Resolver{
		durable:   durable,
		local:     local,
		locale:    locale,
		geo:       geo,
		countries: countries,
		fallback:  fallback,
		current:   fallback,
	}
}

// SetOnChange registers the callback invoked whenever the effective
// language changes. Called without the resolver lock held.
func (r *Resolver) SetOnChange(fn func(language.Code)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Current returns the effective display language.
func (r *Resolver) Current() language.Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resolve computes and applies the effective language for id (nil when
// signed out). Steps run strictly in priority order; each later step is
// attempted only when the earlier ones yield nothing. The returned Source
// names the deciding step. If the user overrides the language while this
// pass is outstanding, the pass is abandoned and the override stands.
func (r *Resolver) Resolve(ctx context.Context, id *identity.Identity) (language.Code, Source) {
	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()

	code, source := r.pick(ctx, id)
	if !r.apply(gen, code) {
		r.mu.Lock()
		cur := r.current
		r.mu.Unlock()
		logger.Debug("Resolution pass superseded by user override", "resolved", string(code), "kept", string(cur))
		return cur, SourceOverride
	}

	// Write back auto-detected languages so the next visit skips
	// detection. Background write: failures are logged, never surfaced.
	if id != nil && source != SourceAccount {
		if err := r.durable.Merge(ctx, id.ID, docstore.Record{Language: string(code)}); err != nil {
			logger.Warn("Failed to save detected language to profile", "error", err)
		}
	}
	return code, source
}

func (r *Resolver) pick(ctx context.Context, id *identity.Identity) (language.Code, Source) {
	if id != nil {
		record, err := r.durable.Get(ctx, id.ID)
		if err != nil {
			logger.Warn("Profile fetch failed during language resolution", "error", err)
		} else if record != nil && language.Supported(language.Code(record.Language)) {
			return language.Code(record.Language), SourceAccount
		}
	}

	if stored, ok := r.local.Get(LocalKey); ok && language.Supported(language.Code(stored)) {
		return language.Code(stored), SourceLocal
	}

	if code, ok := language.FromTag(r.locale()); ok {
		return code, SourceLocale
	}

	if country, ok := r.geo.Country(ctx); ok {
		if code, ok := r.countries[country]; ok && language.Supported(code) {
			return code, SourceGeo
		}
	}
	return r.fallback, SourceDefault
}

// SetLanguage is the explicit user override: it applies immediately,
// always persists to the ephemeral store, and attempts a durable write
// only when signed in. A durable-write failure is returned for the UI to
// surface, without reverting the already-applied change.
func (r *Resolver) SetLanguage(ctx context.Context, id *identity.Identity, code language.Code) error {
	if !language.Supported(code) {
		logger.Warn("Ignoring unsupported language override", "language", string(code))
		return nil
	}

	r.mu.Lock()
	r.gen++
	r.current = code
	fn := r.onChange
	r.mu.Unlock()
	if fn != nil {
		fn(code)
	}

	if err := r.local.Set(LocalKey, string(code)); err != nil {
		logger.Warn("Failed to persist language to local store", "error", err)
	}

	if id != nil {
		if err := r.durable.Merge(ctx, id.ID, docstore.Record{Language: string(code)}); err != nil {
			return err
		}
	}
	return nil
}

// apply installs code unless a newer override already won.
func (r *Resolver) apply(gen uint64, code language.Code) bool {
	r.mu.Lock()
	if r.gen != gen {
		r.mu.Unlock()
		return false
	}
	changed := r.current != code
	r.current = code
	fn := r.onChange
	r.mu.Unlock()

	if changed && fn != nil {
		fn(code)
	}
	return true
}
