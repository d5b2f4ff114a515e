package identity

import (
	"fmt"

	"github.com/oukeidos/caplet/internal/apperrors"
	"github.com/oukeidos/caplet/internal/logger"
)

// Identity is an authenticated visitor as reported by the identity
// provider. The overlay only consumes the id and display email.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider error codes. This is the closed set the provider is
// contracted to return; anything else maps to a generic message.
const (
	CodeEmailInUse        = "auth/email-already-in-use"
	CodeInvalidEmail      = "auth/invalid-email"
	CodeWrongPassword     = "auth/wrong-password"
	CodeUserNotFound      = "auth/user-not-found"
	CodeInvalidCredential = "auth/invalid-credential"
	CodeWeakPassword      = "auth/weak-password"
)

// ErrMissingFields is returned when a credential form is submitted with an
// empty email or password. No provider call is made in that case.
var ErrMissingFields = apperrors.New(apperrors.KindValidation, "Please fill in both email and password.", nil)

// classifyAuthCode maps a provider error code to a user-facing error.
// Wrong-password, user-not-found and invalid-credential are unified so the
// UI never discloses which of the two fields was wrong.
func classifyAuthCode(code, message string) error {
	cause := fmt.Errorf("identity provider error code=%s message=%s", code, message)
	switch code {
	case CodeEmailInUse:
		return apperrors.New(apperrors.KindConflict, "This email is already registered.", cause)
	case CodeInvalidEmail:
		return apperrors.New(apperrors.KindValidation, "Please enter a valid email address.", cause)
	case CodeWrongPassword, CodeUserNotFound, CodeInvalidCredential:
		return apperrors.New(apperrors.KindAuth, "Incorrect email or password.", cause)
	case CodeWeakPassword:
		return apperrors.New(apperrors.KindValidation, "Password is too weak. Use at least 6 characters.", cause)
	default:
		logger.Warn("Unrecognized identity provider error code", "code", code)
		return apperrors.New(apperrors.KindBadRequest, "An unexpected error occurred. Please try again.", cause)
	}
}
