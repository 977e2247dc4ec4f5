// Package common defines shared constants and sentinel errors used across
// client and server layers of rollcall. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrStorageUnavailable wraps failures of the transactional store. The
	// triggering operation is aborted and may be retried by the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMirrorWriteFailed wraps spreadsheet mirror failures. It never rolls
	// back a committed ledger write.
	ErrMirrorWriteFailed = errors.New("mirror write failed")

	// Registration / check-in errors.
	ErrDuplicateSecondaryKey = errors.New("secondary key is already registered")
	ErrAlreadyRegistered     = errors.New("already registered")
	ErrAlreadyCheckedIn      = errors.New("already checked in today")
	ErrValidation            = errors.New("validation error")

	// Conversation / availability errors.
	ErrServiceInactive = errors.New("attendance is currently inactive")
	ErrNoDialogue      = errors.New("no registration in progress")

	// ErrForbidden is returned when a restricted operation is requested by
	// anyone but the administrator.
	ErrForbidden = errors.New("admin access required")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
