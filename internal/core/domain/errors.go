package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no reader handles a file type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyCorpus indicates ingestion produced no chunks to index.
	// This is the one hard stop for building an index.
	ErrEmptyCorpus = errors.New("empty corpus: no chunks to index")

	// ErrIndexNotBuilt indicates a query or save was attempted before
	// an index was built or loaded.
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrIndexUnavailable indicates a persisted index is missing or unreadable
	// and must be rebuilt.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrDimensionMismatch indicates a vector does not match the index dimensions.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrLLMUnavailable indicates a generation model is not configured or reachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Neither building nor searching is possible without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrFetchFailed indicates a page could not be fetched.
	ErrFetchFailed = errors.New("fetch failed")
)
