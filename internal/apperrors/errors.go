package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuth        Kind = "auth"
	KindConflict    Kind = "conflict"
	KindPersistence Kind = "persistence"
	KindTransient   Kind = "transient"
	KindBadRequest  Kind = "bad_request"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return "Please check the entered values and try again."
	case KindAuth:
		return "Sign-in failed. Please verify your email and password."
	case KindConflict:
		return "This account already exists."
	case KindPersistence:
		return "Your preference could not be saved."
	case KindTransient:
		return "Temporary service error. Please try again."
	case KindBadRequest:
		return "Request rejected by the service."
	default:
		return "An unexpected error occurred."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Validation(err error) error {
	return New(KindValidation, "", err)
}

func Auth(err error) error {
	return New(KindAuth, "", err)
}

func Persistence(err error) error {
	return New(KindPersistence, "", err)
}

func Transient(err error) error {
	return New(KindTransient, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// PublicMessage returns a message safe to show in the UI. Wrapped causes
// stay internal.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindTransient
}
