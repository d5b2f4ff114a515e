package identity

import (
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName    = "caplet"
	sessionAccount = "session-token"
	tokenEnvVar    = "CAPLET_SESSION_TOKEN"
)

// LoadToken retrieves the cached session token. The OS keychain wins;
// the environment variable is a fallback for headless setups.
func LoadToken(allowEnv bool) (string, bool) {
	token, err := keyring.Get(serviceName, sessionAccount)
	if err == nil && token != "" {
		return strings.TrimSpace(token), true
	}
	if allowEnv {
		if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
			return token, true
		}
	}
	return "", false
}

// SaveToken caches the session token in the OS keychain.
func SaveToken(token string) error {
	return keyring.Set(serviceName, sessionAccount, strings.TrimSpace(token))
}

// ClearToken removes the cached session token.
func ClearToken() error {
	err := keyring.Delete(serviceName, sessionAccount)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
