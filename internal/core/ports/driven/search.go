package driven

import "context"

// SearchEngine provides keyword (full-text) search over chunk content.
// It backs the keyword and hybrid search modes; semantic mode never
// touches it. Implementations hold their index in memory only.
type SearchEngine interface {
	// Index adds or replaces a chunk's content.
	Index(ctx context.Context, chunkID string, content string) error

	// Delete removes a chunk from the index.
	Delete(ctx context.Context, chunkID string) error

	// Search returns up to limit hits ordered by relevance.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Reset discards all indexed content.
	Reset() error

	// Close releases resources.
	Close() error
}

// SearchHit represents a keyword search result.
type SearchHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the engine's relevance score. Scores are only
	// comparable within a single result list.
	Score float64
}
