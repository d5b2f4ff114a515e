package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/oukeidos/caplet/internal/logger"
)

// Action names a credential submission kind, recorded while a provider
// call is in flight so the UI can show tailored loading text.
type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
)

// Stubs for the keychain, swapped out by tests.
var (
	loadToken  = LoadToken
	saveToken  = SaveToken
	clearToken = ClearToken
)

// Watcher is the identity provider's observable surface: it owns the
// current identity and pushes every transition to subscribed callbacks.
// Registration returns an explicit unsubscribe; there are no global
// callbacks.
type Watcher struct {
	client *Client

	mu       sync.Mutex
	token    string
	current  *Identity
	inflight Action
	nextSub  int
	subs     map[int]func(*Identity)
}

func NewWatcher(client *Client) *Watcher {
	return &Watcher{
		client: client,
		subs:   make(map[int]func(*Identity)),
	}
}

// Subscribe registers a callback invoked on every identity transition.
// The returned function cancels the registration.
func (w *Watcher) Subscribe(fn func(*Identity)) func() {
	w.mu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	w.mu.Unlock()
	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// Start restores a cached session, if any, and delivers the initial
// notification. It always notifies exactly once, present or absent.
func (w *Watcher) Start(ctx context.Context) {
	token, ok := loadToken(true)
	if !ok {
		w.setIdentity("", nil)
		return
	}
	id, err := w.client.CurrentUser(ctx, token)
	if err != nil {
		logger.Info("Cached session is no longer valid", "error", err)
		if err := clearToken(); err != nil {
			logger.Warn("Failed to clear cached session token", "error", err)
		}
		w.setIdentity("", nil)
		return
	}
	w.setIdentity(token, id)
}

// Identity returns the current identity, or nil when signed out.
func (w *Watcher) Identity() *Identity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Token returns the current session token for authenticated store calls.
func (w *Watcher) Token() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.token
}

// InFlight reports whether a credential submission is outstanding and
// which action it is.
func (w *Watcher) InFlight() (Action, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inflight, w.inflight != ""
}

// Submit validates and sends a credential form to the provider. An empty
// field fails with ErrMissingFields before any network call. The in-flight
// flag is cleared on every path.
func (w *Watcher) Submit(ctx context.Context, action Action, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingFields
	}

	w.mu.Lock()
	w.inflight = action
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.inflight = ""
		w.mu.Unlock()
	}()

	var (
		session *Session
		err     error
	)
	switch action {
	case ActionRegister:
		session, err = w.client.Register(ctx, email, password)
	default:
		session, err = w.client.SignIn(ctx, email, password)
	}
	if err != nil {
		return err
	}

	if err := saveToken(session.Token); err != nil {
		logger.Warn("Failed to cache session token; session will not survive restart", "error", err)
	}
	user := session.User
	w.setIdentity(session.Token, &user)
	return nil
}

// SignOut revokes the session and notifies subscribers of the absent
// identity. Remote revocation is best effort; local state always resets.
func (w *Watcher) SignOut(ctx context.Context) {
	w.mu.Lock()
	token := w.token
	w.mu.Unlock()

	if token != "" {
		if err := w.client.SignOut(ctx, token); err != nil {
			logger.Warn("Remote sign-out failed", "error", err)
		}
	}
	if err := clearToken(); err != nil {
		logger.Warn("Failed to clear cached session token", "error", err)
	}
	w.setIdentity("", nil)
}

func (w *Watcher) setIdentity(token string, id *Identity) {
	w.mu.Lock()
	w.token = token
	w.current = id
	fns := make([]func(*Identity), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
