package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Rejected before any side effect; messages name the violated constraint.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown MIME or conversion type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding provider failed,
	// timed out, or is not configured. The triggering ingest or query is
	// aborted with no partial state change; callers may retry.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates the embedding provider returned a
	// vector whose length differs from the index's fixed dimension.
	// Fatal for the current index instance: ingestion is refused until
	// the service is reconfigured.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrSearchUnavailable indicates the keyword search engine is not
	// configured. Keyword and hybrid modes are disabled without it.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	// Semantic similarity search is disabled.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrServiceDegraded indicates a previous dimension mismatch poisoned
	// the index instance; further ingestion is refused.
	ErrServiceDegraded = errors.New("service degraded after dimension mismatch")

	// ErrFetchFailed indicates a remote fetch could not be completed.
	ErrFetchFailed = errors.New("fetch failed")
)
