package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file kind no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMissingID indicates a record was submitted for upsert without
	// an identifier. Idempotent re-sync depends on caller-supplied ids,
	// so backend-generated ids are never relied upon.
	ErrMissingID = errors.New("record missing id")

	// ErrBackendUnavailable indicates the collection backend could not
	// be reached or returned a server error on a write operation.
	ErrBackendUnavailable = errors.New("collection backend unavailable")
)
