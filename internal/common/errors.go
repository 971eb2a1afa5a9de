package common

import "errors"

var (
	// store specific errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// upstream weather/geocoding provider could not answer the query
	ErrProviderUnavailable = errors.New("weather provider unavailable")

	// credential errors
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrNotAuthenticated  = errors.New("email or password is incorrect")

	// ErrUnauthorized is returned for actions that need a logged in user.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidQuery = errors.New("invalid location query")
)
