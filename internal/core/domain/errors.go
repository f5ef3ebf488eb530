package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateDocument indicates a document with the same content
	// hash is already stored.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// not reachable. Retrieval still works; only answering is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUnsupportedType indicates an unknown extractor or storage type.
	ErrUnsupportedType = errors.New("unsupported type")
)
