// Package session tracks the authentication state the rest of the
// overlay keys off of.
package session

import (
	"sync"

	"github.com/oukeidos/caplet/internal/identity"
)

// AuthWatcher is the identity provider's subscription surface.
type AuthWatcher interface {
	Subscribe(fn func(*identity.Identity)) func()
}

// Panel is the slice of the panel coordinator the tracker drives: the
// panel presents itself on login and resets on logout.
type Panel interface {
	Open()
	Close()
}

// Tracker mirrors the provider's identity stream. It holds the current
// identity, a loading flag cleared exactly once on the first
// notification, and fans transitions out to listeners.
type Tracker struct {
	watcher AuthWatcher

	mu        sync.Mutex
	current   *identity.Identity
	loading   bool
	unsub     func()
	panel     Panel
	nextSub   int
	listeners map[int]func(prev, cur *identity.Identity)
}

func NewTracker(watcher AuthWatcher) *Tracker {
	return &Tracker{
		watcher:   watcher,
		loading:   true,
		listeners: make(map[int]func(prev, cur *identity.Identity)),
	}
}

// BindPanel attaches the panel coordinator driven by login/logout
// transitions. Must be called before Start.
func (t *Tracker) BindPanel(p Panel) {
	t.mu.Lock()
	t.panel = p
	t.mu.Unlock()
}

// Start registers the single provider subscription. Idempotent.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.unsub != nil {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	unsub := t.watcher.Subscribe(t.handle)
	t.mu.Lock()
	t.unsub = unsub
	t.mu.Unlock()
}

// Stop deregisters the provider subscription.
func (t *Tracker) Stop() {
	t.mu.Lock()
	unsub := t.unsub
	t.unsub = nil
	t.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Identity returns the current identity, nil when signed out.
func (t *Tracker) Identity() *identity.Identity {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Loading reports whether the first provider notification is still
// outstanding.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// AddListener registers a transition callback; the returned function
// removes it.
func (t *Tracker) AddListener(fn func(prev, cur *identity.Identity)) func() {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.listeners[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

func (t *Tracker) handle(cur *identity.Identity) {
	t.mu.Lock()
	prev := t.current
	t.current = cur
	t.loading = false
	panel := t.panel
	fns := make([]func(prev, cur *identity.Identity), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	if panel != nil {
		switch {
		case prev == nil && cur != nil:
			panel.Open()
		case prev != nil && cur == nil:
			panel.Close()
		}
	}
	for _, fn := range fns {
		fn(prev, cur)
	}
}
