package identity

import (
	"errors"
	"testing"

	"github.com/oukeidos/caplet/internal/apperrors"
)

func TestClassifyAuthCode_KnownCodes(t *testing.T) {
	cases := []struct {
		code string
		kind apperrors.Kind
	}{
		{CodeEmailInUse, apperrors.KindConflict},
		{CodeInvalidEmail, apperrors.KindValidation},
		{CodeWrongPassword, apperrors.KindAuth},
		{CodeUserNotFound, apperrors.KindAuth},
		{CodeInvalidCredential, apperrors.KindAuth},
		{CodeWeakPassword, apperrors.KindValidation},
	}
	for _, tc := range cases {
		err := classifyAuthCode(tc.code, "")
		kind, ok := apperrors.KindOf(err)
		if !ok || kind != tc.kind {
			t.Fatalf("classifyAuthCode(%q) kind = (%q, %v), want %q", tc.code, kind, ok, tc.kind)
		}
	}
}

func TestClassifyAuthCode_BadCredentialUnified(t *testing.T) {
	wrong := apperrors.PublicMessage(classifyAuthCode(CodeWrongPassword, ""))
	missing := apperrors.PublicMessage(classifyAuthCode(CodeUserNotFound, ""))
	invalid := apperrors.PublicMessage(classifyAuthCode(CodeInvalidCredential, ""))
	if wrong != missing || missing != invalid {
		t.Fatalf("bad-credential messages differ: %q / %q / %q", wrong, missing, invalid)
	}
}

func TestClassifyAuthCode_WeakPasswordMessage(t *testing.T) {
	msg := apperrors.PublicMessage(classifyAuthCode(CodeWeakPassword, ""))
	if msg != "Password is too weak. Use at least 6 characters." {
		t.Fatalf("weak-password message = %q", msg)
	}
}

func TestClassifyAuthCode_UnknownCodeIsGeneric(t *testing.T) {
	err := classifyAuthCode("auth/quota-exceeded", "internal detail")
	kind, ok := apperrors.KindOf(err)
	if !ok || kind != apperrors.KindBadRequest {
		t.Fatalf("unknown code kind = (%q, %v)", kind, ok)
	}
	if msg := apperrors.PublicMessage(err); msg != "An unexpected error occurred. Please try again." {
		t.Fatalf("unknown code message = %q", msg)
	}
	if !errors.As(err, new(*apperrors.Error)) {
		t.Fatalf("expected an apperrors.Error")
	}
}
