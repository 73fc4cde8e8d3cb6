package domain

import "errors"

// Sentinel errors for the ledger domain. Use errors.Is() to check these.
// All are non-retryable by the engine itself; retry policy belongs to callers.
var (
	// ErrNotFound indicates the requested item was never registered.
	ErrNotFound = errors.New("item not found")

	// ErrAlreadyExists indicates a registration with a duplicate item id.
	ErrAlreadyExists = errors.New("item already registered")

	// ErrInvalidInput indicates malformed registration fields or a negative
	// cost addition.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStageMismatch indicates the caller's expected stage does not match
	// the item's actual stage. The caller should re-fetch and retry with the
	// updated expectation.
	ErrStageMismatch = errors.New("stage mismatch")

	// ErrInvalidTransition indicates the item's current stage does not
	// support the requested transition (terminal item, double claim, or a
	// stage outside the operation's domain).
	ErrInvalidTransition = errors.New("invalid transition")
)
