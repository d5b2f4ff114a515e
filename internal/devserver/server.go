package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/oukeidos/caplet/internal/logger"
)

// minPasswordLength mirrors the weakest password the hosted provider
// accepts, so development behaves like production.
const minPasswordLength = 6

// Server serves the identity and record-store API the overlay clients
// talk to.
type Server struct {
	store  *Store
	tokens *Tokens
	secret string
}

// NewServer wires the API around a store. secret signs both session
// tokens and credential hashes.
func NewServer(store *Store, secret string) *Server {
	return &Server{
		store:  store,
		tokens: NewTokens(secret, DefaultTokenTTL),
		secret: secret,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /v1/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /v1/auth/session", s.handleSession)
	mux.HandleFunc("GET /v1/users/{id}/profile", s.handleProfileGet)
	mux.HandleFunc("PATCH /v1/users/{id}/profile", s.handleProfilePatch)
	return mux
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "auth/invalid-email", "malformed request body")
		return
	}
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "auth/invalid-email", "email address is invalid")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "auth/weak-password", "password is too weak")
		return
	}

	user, err := s.store.CreateUser(r.Context(), email, hashPassword(s.secret, req.Password))
	if errors.Is(err, ErrDuplicateEmail) {
		writeError(w, http.StatusConflict, "auth/email-already-in-use", "email is already registered")
		return
	}
	if err != nil {
		logger.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	s.writeSession(w, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "auth/invalid-email", "malformed request body")
		return
	}

	user, err := s.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		logger.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if user == nil || !verifyPassword(s.secret, req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "auth/invalid-credential", "invalid email or password")
		return
	}
	s.writeSession(w, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, jti, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if err := s.store.RevokeToken(r.Context(), jti); err != nil {
		logger.Error("token revocation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	user, err := s.store.UserByID(r.Context(), userID)
	if err != nil {
		logger.Error("session lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "auth/user-not-found", "account no longer exists")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorizeProfile(w, r)
	if !ok {
		return
	}
	profile, err := s.store.Profile(r.Context(), userID)
	if err != nil {
		logger.Error("profile fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "not-found", "no profile for user")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleProfilePatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorizeProfile(w, r)
	if !ok {
		return
	}
	var patch Profile
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", "malformed request body")
		return
	}
	if err := s.store.MergeProfile(r.Context(), userID, patch); err != nil {
		logger.Error("profile merge failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizeProfile authenticates the caller and checks the path user
// matches the token subject.
func (s *Server) authorizeProfile(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, _, ok := s.authenticate(w, r)
	if !ok {
		return "", false
	}
	if r.PathValue("id") != userID {
		writeError(w, http.StatusForbidden, "forbidden", "token does not match user")
		return "", false
	}
	return userID, true
}

// authenticate extracts and verifies the bearer token, rejecting
// revoked sessions. On failure it writes the error response itself.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (userID, jti string, ok bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		writeError(w, http.StatusUnauthorized, "auth/invalid-credential", "missing bearer token")
		return "", "", false
	}
	userID, jti, err := s.tokens.Verify(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "auth/invalid-credential", "invalid or expired token")
		return "", "", false
	}
	revoked, err := s.store.TokenRevoked(r.Context(), jti)
	if err != nil {
		logger.Error("revocation check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return "", "", false
	}
	if revoked {
		writeError(w, http.StatusUnauthorized, "auth/invalid-credential", "session has been signed out")
		return "", "", false
	}
	return userID, jti, true
}

func (s *Server) writeSession(w http.ResponseWriter, user *User) {
	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Email: user.Email},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
