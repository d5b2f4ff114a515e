package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oukeidos/caplet/internal/devserver"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

type tokenStubs struct {
	saved   string
	cleared bool
}

func withAuthStubs(t *testing.T, storedToken string) *tokenStubs {
	t.Helper()
	stubs := &tokenStubs{}

	prevIsTerminal := isTerminal
	prevReadPassword := readPassword
	prevLoad := loadToken
	prevSave := saveToken
	prevClear := clearToken

	isTerminal = func(_ int) bool { return true }
	readPassword = func(_ int) ([]byte, error) { return []byte("secret1"), nil }
	loadToken = func(_ bool) (string, bool) {
		if stubs.saved != "" {
			return stubs.saved, true
		}
		return storedToken, storedToken != ""
	}
	saveToken = func(token string) error {
		stubs.saved = token
		return nil
	}
	clearToken = func() error {
		stubs.cleared = true
		stubs.saved = ""
		return nil
	}

	t.Cleanup(func() {
		isTerminal = prevIsTerminal
		readPassword = prevReadPassword
		loadToken = prevLoad
		saveToken = prevSave
		clearToken = prevClear
	})
	return stubs
}

// startBackend runs a devserver and returns the CLI flags that point a
// command at it.
func startBackend(t *testing.T) []string {
	t.Helper()
	store, err := devserver.OpenStore(filepath.Join(t.TempDir(), "caplet.db"))
	if err != nil {
		t.Fatalf("OpenStore() error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ts := httptest.NewServer(devserver.NewServer(store, "test-secret").Handler())
	t.Cleanup(ts.Close)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	body := "identity_url = \"" + ts.URL + "\"\ndocstore_url = \"" + ts.URL + "\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return []string{"--config", configPath}
}

func TestLangsCommand(t *testing.T) {
	out, err := executeCommand(t, "langs")
	if err != nil {
		t.Fatalf("langs failed: %v", err)
	}
	for _, want := range []string{"Portuguese", "pt", "English", "zh-Hans"} {
		if !strings.Contains(out, want) {
			t.Fatalf("langs output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := executeCommand(t, "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "identity_url") {
		t.Fatalf("config output missing sample body:\n%s", out)
	}
}

func TestRegisterLoginWhoamiLogout(t *testing.T) {
	cfgArgs := startBackend(t)
	stubs := withAuthStubs(t, "")

	out, err := executeCommand(t, append([]string{"register", "user@example.com"}, cfgArgs...)...)
	if err != nil {
		t.Fatalf("register failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Signed in as user@example.com") {
		t.Fatalf("unexpected register output: %s", out)
	}
	if stubs.saved == "" {
		t.Fatalf("register did not cache the session token")
	}

	out, err = executeCommand(t, append([]string{"whoami"}, cfgArgs...)...)
	if err != nil {
		t.Fatalf("whoami failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "user@example.com") {
		t.Fatalf("unexpected whoami output: %s", out)
	}

	out, err = executeCommand(t, append([]string{"logout"}, cfgArgs...)...)
	if err != nil {
		t.Fatalf("logout failed: %v\n%s", err, out)
	}
	if !stubs.cleared {
		t.Fatalf("logout did not clear the cached token")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	cfgArgs := startBackend(t)
	stubs := withAuthStubs(t, "")

	out, err := executeCommand(t, append([]string{"register", "user@example.com"}, cfgArgs...)...)
	if err != nil {
		t.Fatalf("register failed: %v\n%s", err, out)
	}
	stubs.saved = ""

	prev := readPassword
	readPassword = func(_ int) ([]byte, error) { return []byte("wrong-password"), nil }
	defer func() { readPassword = prev }()

	_, err = executeCommand(t, append([]string{"login", "user@example.com"}, cfgArgs...)...)
	if err == nil {
		t.Fatalf("expected login to fail with a wrong password")
	}
	if !strings.Contains(err.Error(), "Incorrect email or password") {
		t.Fatalf("unexpected login error: %v", err)
	}
}

func TestWhoamiSignedOut(t *testing.T) {
	cfgArgs := startBackend(t)
	withAuthStubs(t, "")

	out, err := executeCommand(t, append([]string{"whoami"}, cfgArgs...)...)
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if !strings.Contains(out, "Not signed in.") {
		t.Fatalf("unexpected output: %s", out)
	}
}
