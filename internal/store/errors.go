package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a user insert collides with an
	// existing normalized email.
	ErrDuplicateEmail = errors.New("email already registered")
)
