package hnsw

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	t.Run("valid dimensions", func(t *testing.T) {
		idx, err := New(4)
		require.NoError(t, err)
		assert.Equal(t, 4, idx.Dimensions())
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		_, err := New(0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIndex_SmallCorpus(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.AddBatch(ctx, []driven.IndexEntry{
		{ChunkID: "east", Embedding: []float32{1, 0}},
		{ChunkID: "north", Embedding: []float32{0, 1}},
		{ChunkID: "north-east", Embedding: []float32{1, 1}},
	}))
	assert.Equal(t, 3, idx.Len())

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "east", hits[0].ChunkID)
	assert.Equal(t, "north-east", hits[1].ChunkID)
	assert.Equal(t, "north", hits[2].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
}

func TestIndex_AddBatch_Atomicity(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	err = idx.AddBatch(ctx, []driven.IndexEntry{
		{ChunkID: "ok", Embedding: []float32{1, 0}},
		{ChunkID: "bad", Embedding: []float32{1}},
	})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_Search_EdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("empty index returns empty", func(t *testing.T) {
		idx, err := New(2)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("fewer entries than k returns all", func(t *testing.T) {
		idx, err := New(2)
		require.NoError(t, err)
		require.NoError(t, idx.Add(ctx, "only", []float32{1, 1}))

		hits, err := idx.Search(ctx, []float32{1, 1}, 10)
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})

	t.Run("rejects wrong query dimension", func(t *testing.T) {
		idx, err := New(2)
		require.NoError(t, err)

		_, err = idx.Search(ctx, []float32{1, 0, 0}, 3)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("ties resolve to earlier insertion", func(t *testing.T) {
		idx, err := New(2)
		require.NoError(t, err)
		require.NoError(t, idx.AddBatch(ctx, []driven.IndexEntry{
			{ChunkID: "first", Embedding: []float32{3, 0}},
			{ChunkID: "second", Embedding: []float32{7, 0}},
		}))

		hits, err := idx.Search(ctx, []float32{1, 0}, 2)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "first", hits[0].ChunkID)
	})
}

func TestIndex_SelfRecall(t *testing.T) {
	ctx := context.Background()
	const dims = 8
	const count = 120

	idx, err := New(dims)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	vecs := make([][]float32, count)
	entries := make([]driven.IndexEntry, count)
	for i := range vecs {
		vec := make([]float32, dims)
		for d := range vec {
			vec[d] = float32(rng.NormFloat64())
		}
		vecs[i] = vec
		entries[i] = driven.IndexEntry{ChunkID: fmt.Sprintf("c%d", i), Embedding: vec}
	}
	require.NoError(t, idx.AddBatch(ctx, entries))
	require.Equal(t, count, idx.Len())

	// Querying a stored vector should find that vector first.
	for _, probe := range []int{0, 17, 59, 119} {
		hits, err := idx.Search(ctx, vecs[probe], 5)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, fmt.Sprintf("c%d", probe), hits[0].ChunkID)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	}
}

func TestIndex_OrderedResults(t *testing.T) {
	ctx := context.Background()
	idx, err := New(4)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		vec := make([]float32, 4)
		for d := range vec {
			vec[d] = float32(rng.NormFloat64())
		}
		require.NoError(t, idx.Add(ctx, fmt.Sprintf("c%d", i), vec))
	}

	hits, err := idx.Search(ctx, []float32{1, 0, 0, 0}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.LessOrEqual(t, len(hits), 10)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestIndex_Clear(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, "c1", []float32{1, 0}))
	idx.Clear()

	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 2, idx.Dimensions())

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)

	// The graph accepts inserts again after a clear.
	require.NoError(t, idx.Add(ctx, "c2", []float32{0, 1}))
	assert.Equal(t, 1, idx.Len())
}
