package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownKind indicates a resource kind outside the six synchronised ones.
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrMalformedElement indicates a fetched element that is not a JSON object.
	ErrMalformedElement = errors.New("malformed element")

	// ErrInvalidConfig indicates missing or inconsistent configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAlreadyRunning indicates the scheduler worker is already started.
	ErrAlreadyRunning = errors.New("already running")
)
