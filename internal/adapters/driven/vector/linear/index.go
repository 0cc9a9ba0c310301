// Package linear provides an exact linear-scan vector index.
//
// Every query scans all entries, costing O(N*D). That is correct and
// fast enough for corpora of hundreds to low thousands of chunks, and
// serves as the correctness baseline for approximate indexes behind
// the same port.
package linear

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores vectors in insertion order and scans all of them per
// query. The index owns copies of the vectors it is given.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	entries    []entry
}

// entry is one stored vector. Its position in the entries slice is
// its insertion sequence number.
type entry struct {
	chunkID string
	vec     []float32
}

// New creates an index with a fixed vector dimension.
func New(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be > 0, got %d", domain.ErrInvalidInput, dimensions)
	}
	return &Index{dimensions: dimensions}, nil
}

// Add inserts a single vector for the given chunk ID.
func (idx *Index) Add(ctx context.Context, chunkID string, embedding []float32) error {
	return idx.AddBatch(ctx, []driven.IndexEntry{{ChunkID: chunkID, Embedding: embedding}})
}

// AddBatch validates every entry's dimension, then appends them all
// under one write lock. A validation failure leaves the index
// unchanged; a concurrent Search sees either none or all entries.
func (idx *Index) AddBatch(_ context.Context, entries []driven.IndexEntry) error {
	for _, e := range entries {
		if len(e.Embedding) != idx.dimensions {
			return fmt.Errorf("%w: chunk %s has %d dimensions, index expects %d",
				domain.ErrDimensionMismatch, e.ChunkID, len(e.Embedding), idx.dimensions)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, e := range entries {
		vec := make([]float32, len(e.Embedding))
		copy(vec, e.Embedding)
		idx.entries = append(idx.entries, entry{chunkID: e.ChunkID, vec: vec})
	}
	return nil
}

// Search scans every entry and returns up to k hits ordered by cosine
// similarity descending, ties broken by earlier insertion. An empty
// index returns an empty slice.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(query), idx.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]driven.VectorHit, len(idx.entries))
	for i, e := range idx.entries {
		hits[i] = driven.VectorHit{
			ChunkID: e.chunkID,
			Score:   cosine(query, e.vec),
			Seq:     i,
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Seq < hits[j].Seq
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Dimensions returns the index's fixed vector dimension.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}

// Clear removes all entries. The dimension is unchanged.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = nil
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.Clear()
	return nil
}

// cosine computes dot(a,b) / (norm(a) * norm(b)). A zero-norm vector
// on either side scores 0.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
