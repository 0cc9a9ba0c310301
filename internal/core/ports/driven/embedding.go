package driven

import "context"

// EmbeddingService generates vector embeddings for text.
// The dimension is fixed for the lifetime of the service; every
// returned vector has exactly Dimensions() elements.
type EmbeddingService interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call,
	// returning one vector per input in input order. A failure for any
	// element fails the whole batch; no partial results are returned.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the model identifier.
	ModelName() string

	// Ping checks service availability.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
