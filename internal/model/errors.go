package model

import "errors"

var (
	// ErrNotFound is returned by stores when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable is returned when the store could not be reached
	// in time. Transient: a caller may retry once; ErrNotFound is terminal.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmailTaken is returned on registration with an already-used email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden is returned when an authenticated user lacks permission
	// for an operation. Distinct from authentication failures.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrInvalidInput is returned for requests that fail domain validation.
	ErrInvalidInput = errors.New("invalid input")
)
