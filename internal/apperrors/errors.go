// Package apperrors holds the sentinel errors surfaced at the request
// boundary. Handlers translate them to HTTP statuses with Status.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotConfigured blocks every mutating operation while the Supabase
	// endpoint and key are unset.
	ErrNotConfigured = errors.New("supabase is not configured")

	ErrEmptyPrompt         = errors.New("prompt must not be empty")
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrAuth covers rejected credentials and failed registrations.
	ErrAuth               = errors.New("authentication failed")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrAuth)
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrPersistence        = errors.New("persistence failure")

	// ErrDebitedNotRecorded marks the known consistency gap: credits were
	// debited but the project row was not written. The mismatch is reported,
	// not repaired.
	ErrDebitedNotRecorded = errors.New("credits debited but result not recorded")
)

// Status maps a sentinel error to an HTTP status code. Unknown errors
// map to 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDebitedNotRecorded), errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the short machine-readable code used in error responses.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrEmptyPrompt):
		return "invalid_prompt"
	case errors.Is(err, ErrInsufficientCredits):
		return "insufficient_credits"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrAuth):
		return "auth_failed"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrDebitedNotRecorded):
		return "debited_not_recorded"
	case errors.Is(err, ErrPersistence):
		return "persistence_failure"
	default:
		return "internal_error"
	}
}
