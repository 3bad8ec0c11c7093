package session

import "errors"

var (
	// ErrSessionNotFound is returned when a token does not match a live session.
	// Missing, expired, and never-existed are intentionally indistinguishable.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials is returned by Login for unknown usernames and
	// wrong passwords alike. Callers must not be able to tell which it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAuthenticated is returned by Check when no valid session backs
	// the presented token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
