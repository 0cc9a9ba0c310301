package driven

import "context"

// VectorIndex stores (chunk ID, embedding) pairs and answers
// k-nearest-neighbour queries under cosine similarity.
//
// Implementations must reject vectors whose length differs from the
// index's fixed dimension, preserve insertion order for tie-breaking,
// and allow concurrent Search calls while an AddBatch is either fully
// visible or not visible at all.
type VectorIndex interface {
	// Add inserts a single vector for the given chunk ID.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// AddBatch inserts all entries atomically: a concurrent Search
	// observes either none or all of them. Validation failures leave
	// the index unchanged.
	AddBatch(ctx context.Context, entries []IndexEntry) error

	// Search finds up to k entries maximising cosine similarity to the
	// query vector, ordered by score descending with ties broken by
	// earlier insertion. An empty index returns an empty slice, not an
	// error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored entries.
	Len() int

	// Dimensions returns the index's fixed vector dimension.
	Dimensions() int

	// Clear removes all entries. The dimension is unchanged.
	Clear()

	// Close releases resources.
	Close() error
}

// IndexEntry is one (chunk ID, embedding) pair to store.
type IndexEntry struct {
	// ChunkID identifies the chunk the vector belongs to.
	ChunkID string

	// Embedding is the chunk's vector.
	Embedding []float32
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the raw cosine similarity in [-1, 1].
	Score float64

	// Seq is the entry's insertion sequence number, used for
	// deterministic tie-breaking downstream.
	Seq int
}
