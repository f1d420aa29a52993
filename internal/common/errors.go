// Package common defines shared constants and sentinel errors used across
// the scorekeep server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors: malformed, missing, or out-of-range input.
	// Never retried; surfaced to the caller for correction.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict signals a uniqueness violation (email or nickname
	// already taken).
	ErrConflict = errors.New("already exists")

	// ErrUnknownUser signals a progress write referencing a user id that
	// does not exist (or no longer exists).
	ErrUnknownUser = errors.New("unknown user")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorageUnavailable signals a transient backend failure. The
	// caller may retry with backoff; the server performs no internal retry.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
