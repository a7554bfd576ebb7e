package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors: a store adapter returns
// ErrNotFound when a row is legitimately absent and wraps everything else,
// so callers can tell "has none" apart from "failed to read".
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownEntityType indicates an entity type outside the closed set.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrVectorLengthMismatch indicates two embedding vectors of different
	// dimensionality were compared. This is a caller contract violation,
	// not a data condition.
	ErrVectorLengthMismatch = errors.New("vector length mismatch")

	// ErrCacheUnavailable indicates the intelligence cache is not configured.
	ErrCacheUnavailable = errors.New("intelligence cache unavailable")

	// ErrStoreUnavailable indicates the catalog store is not configured.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)
