package devserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens builds a token issuer signing with secret.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a session token for a user. The returned jti identifies
// the token for revocation.
func (t *Tokens) Issue(userID string) (token, jti string, err error) {
	jti = uuid.NewString()
	now := t.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return token, jti, nil
}

// Verify validates a token's signature and expiry and returns the user
// it was issued to along with its jti.
func (t *Tokens) Verify(token string) (userID, jti string, err error) {
	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", "", fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return "", "", errors.New("token missing subject or id")
	}
	return claims.Subject, claims.ID, nil
}

// hashPassword derives a deterministic credential hash with
// HMAC-SHA256 keyed by the server secret. Good enough for a
// development backend; not a substitute for a real KDF.
func hashPassword(secret, password string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// verifyPassword compares a candidate password against a stored hash
// in constant time.
func verifyPassword(secret, password, storedHash string) bool {
	expected := hashPassword(secret, password)
	return hmac.Equal([]byte(expected), []byte(storedHash))
}
