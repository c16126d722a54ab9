package domain

import "errors"

var (
	// ErrNotFound means the entity has no ledger history at all. An empty
	// window for a known entity is not an error.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidParameter rejects malformed inputs before any computation.
	ErrInvalidParameter = errors.New("invalid parameter")
)
