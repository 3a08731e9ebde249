package service

import "errors"

// Failure kinds of the auth core. Handlers collapse the session ones
// into a single client-facing message so callers can't probe which
// check failed; the distinct values exist for logs and tests.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrNoSessions         = errors.New("no sessions found")
	ErrTokenMismatch      = errors.New("refresh token mismatch")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("forbidden")
)

// IsSessionFailure reports whether err is one of the session-matching
// failures that all surface as "Session expired. Please log in again."
func IsSessionFailure(err error) bool {
	return errors.Is(err, ErrNoSessions) ||
		errors.Is(err, ErrTokenMismatch) ||
		errors.Is(err, ErrSessionExpired)
}
