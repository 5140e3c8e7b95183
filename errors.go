package chatroom

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNotFound indicates a lookup found no record for the given key.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates input failed validation.
	ErrValidation = errors.New("validation error")

	// ErrInvalidCredentials indicates an email/password pair matched no user.
	ErrInvalidCredentials = errors.New("wrong email or password")
)
