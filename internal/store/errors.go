package store

import "errors"

// Error taxonomy shared by all store implementations. Callers distinguish
// cases with errors.Is; handlers translate them to HTTP statuses.
var (
	// ErrNotFound is returned when an operation references an absent id.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a required field is missing or empty.
	ErrValidation = errors.New("validation failed")
	// ErrBackend is returned when the remote record store fails or returns a
	// non-success envelope.
	ErrBackend = errors.New("backend request failed")
)
