// Package hash provides a deterministic in-process embedding service.
//
// Texts are embedded by feature hashing: each lowercased token and
// each adjacent token pair is hashed with FNV-1a into one of D
// buckets with a hash-derived sign, and the resulting vector is
// L2-normalised. Identical texts always embed identically, texts
// sharing words land near each other, and no network or model file
// is needed. This is the default provider and the test stub.
package hash

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions is the default vector size.
const DefaultDimensions = 256

// pairWeight scales the contribution of adjacent token pairs relative
// to single tokens.
const pairWeight = 0.5

// EmbeddingService generates deterministic embeddings by token hashing.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a hash embedding service. Non-positive
// dimensions fall back to the default.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, s.dimensions)

	tokens := strings.Fields(strings.ToLower(text))
	for _, tok := range tokens {
		s.accumulate(vec, tok, 1)
	}
	for i := 0; i+1 < len(tokens); i++ {
		s.accumulate(vec, tokens[i]+" "+tokens[i+1], pairWeight)
	}

	normalise(vec)
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts, one vector per
// input in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the synthetic model identifier, e.g. "fnv-256".
func (s *EmbeddingService) ModelName() string {
	return fmt.Sprintf("fnv-%d", s.dimensions)
}

// Ping always succeeds; there is no remote service.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// accumulate adds a feature's weight to its hash bucket. A second
// hash decides the sign so unrelated texts stay near orthogonal.
func (s *EmbeddingService) accumulate(vec []float32, feature string, weight float32) {
	h := fnv.New32a()
	h.Write([]byte(feature))
	bucket := int(h.Sum32() % uint32(s.dimensions))

	h.Write([]byte{'#'})
	if h.Sum32()&1 == 1 {
		weight = -weight
	}
	vec[bucket] += weight
}

// normalise scales vec to unit length. A zero vector stays zero.
func normalise(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
