package apperrors

import (
	"errors"
	"testing"
)

func TestPublicMessage_UsesSafeMessage(t *testing.T) {
	sentinel := errors.New("hmac mismatch for user 42")
	err := New(KindAuth, "safe auth error", sentinel)
	if got := PublicMessage(err); got != "safe auth error" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "safe auth error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped cause to be retained for internal matching")
	}
}

func TestNew_DefaultMessagePerKind(t *testing.T) {
	err := New(KindPersistence, "", errors.New("disk full"))
	if got := PublicMessage(err); got != "Your preference could not be saved." {
		t.Fatalf("PublicMessage() = %q", got)
	}
}

func TestKindOfAndRetryable(t *testing.T) {
	err := New(KindTransient, "", errors.New("boom"))
	kind, ok := KindOf(err)
	if !ok || kind != KindTransient {
		t.Fatalf("KindOf() = (%q, %v), want (%q, true)", kind, ok, KindTransient)
	}
	if !IsRetryable(err) {
		t.Fatalf("expected transient error to be retryable")
	}
	if IsRetryable(New(KindAuth, "", nil)) {
		t.Fatalf("auth errors must not be retryable")
	}
}

func TestPublicMessage_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if got := PublicMessage(err); got != "plain" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "plain")
	}
}
