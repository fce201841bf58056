package profile

import "errors"

var (
	// ErrNotFound is returned when no stored profile exists for the user.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
)
