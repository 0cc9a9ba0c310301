// Package hnsw provides an approximate vector index backed by a
// hierarchical navigable small world graph.
//
// Inserts assign each node a random level and link it to its nearest
// neighbours per layer; queries descend the layer hierarchy greedily
// and run a best-first beam search on the base layer. Search cost
// grows logarithmically with entry count instead of linearly.
//
// Recall characteristics: results are approximate. With the default
// beam width the index recovers the true nearest neighbours almost
// always at corpus sizes up to the tens of thousands, but recall is
// not guaranteed; the linear index is the exact correctness baseline
// and the default.
package hnsw

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Graph parameters.
const (
	// maxLevelCap bounds the random level assignment.
	maxLevelCap = 16
	// maxNeighbors is the connection budget per upper layer.
	maxNeighbors = 16
	// maxNeighborsBase is the connection budget on the base layer.
	maxNeighborsBase = 32
	// efConstruction is the beam width while inserting.
	efConstruction = 40
	// efSearch is the minimum beam width while querying.
	efSearch = 50
	// levelProbability drives the geometric level distribution.
	levelProbability = 0.5
)

// Index is a layered proximity graph over stored vectors. The index
// owns copies of the vectors it is given.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	nodes      []*node
	entryPoint int
	topLevel   int // -1 while empty
}

// node is one stored vector with its per-layer adjacency. Its position
// in the nodes slice is its insertion sequence number.
type node struct {
	chunkID   string
	vec       []float32
	level     int
	neighbors [][]int
}

// candidate pairs a node with its distance to the current query.
type candidate struct {
	seq  int
	dist float64
}

// New creates an index with a fixed vector dimension.
func New(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be > 0, got %d", domain.ErrInvalidInput, dimensions)
	}
	return &Index{dimensions: dimensions, topLevel: -1}, nil
}

// Add inserts a single vector for the given chunk ID.
func (idx *Index) Add(ctx context.Context, chunkID string, embedding []float32) error {
	return idx.AddBatch(ctx, []driven.IndexEntry{{ChunkID: chunkID, Embedding: embedding}})
}

// AddBatch validates every entry's dimension, then inserts them all
// under one write lock. A validation failure leaves the graph
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
		idx.insertLocked(e.ChunkID, vec)
	}
	return nil
}

// insertLocked links a new node into the graph. Caller holds the
// write lock.
func (idx *Index) insertLocked(chunkID string, vec []float32) {
	seq := len(idx.nodes)
	level := randomLevel()
	n := &node{
		chunkID:   chunkID,
		vec:       vec,
		level:     level,
		neighbors: make([][]int, level+1),
	}
	idx.nodes = append(idx.nodes, n)

	if idx.topLevel < 0 {
		idx.entryPoint = seq
		idx.topLevel = level
		return
	}

	// Descend to the node's level through the upper layers.
	ep := idx.entryPoint
	for l := idx.topLevel; l > level; l-- {
		ep = idx.greedyClosest(vec, ep, l)
	}

	// Link into each layer from the top down. Links are symmetric so
	// the base layer stays connected.
	for l := min(level, idx.topLevel); l >= 0; l-- {
		nearest := idx.searchLayer(vec, ep, efConstruction, l)

		budget := maxNeighbors
		if l == 0 {
			budget = maxNeighborsBase
		}
		if len(nearest) > budget {
			nearest = nearest[:budget]
		}

		links := make([]int, len(nearest))
		for i, c := range nearest {
			links[i] = c.seq
		}
		n.neighbors[l] = links
		for _, nb := range links {
			idx.nodes[nb].neighbors[l] = append(idx.nodes[nb].neighbors[l], seq)
		}

		if len(links) > 0 {
			ep = links[0]
		}
	}

	if level > idx.topLevel {
		idx.entryPoint = seq
		idx.topLevel = level
	}
}

// Search returns up to k hits ordered by cosine similarity descending,
// ties broken by earlier insertion. An empty index returns an empty
// slice.
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

	if idx.topLevel < 0 {
		return nil, nil
	}

	ep := idx.entryPoint
	for l := idx.topLevel; l > 0; l-- {
		ep = idx.greedyClosest(query, ep, l)
	}

	beam := idx.searchLayer(query, ep, max(efSearch, k), 0)

	hits := make([]driven.VectorHit, len(beam))
	for i, c := range beam {
		hits[i] = driven.VectorHit{
			ChunkID: idx.nodes[c.seq].chunkID,
			Score:   1 - c.dist,
			Seq:     c.seq,
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

// greedyClosest walks one layer towards the query until no neighbour
// improves the distance.
func (idx *Index) greedyClosest(query []float32, ep, level int) int {
	curr := ep
	currDist := cosineDistance(query, idx.nodes[curr].vec)

	for changed := true; changed; {
		changed = false
		for _, nb := range idx.nodes[curr].neighbors[level] {
			if d := cosineDistance(query, idx.nodes[nb].vec); d < currDist {
				curr, currDist = nb, d
				changed = true
			}
		}
	}
	return curr
}

// searchLayer runs a best-first beam search of width ef on one layer.
// Results come back sorted by distance ascending, ties by sequence.
func (idx *Index) searchLayer(query []float32, ep, ef, level int) []candidate {
	start := candidate{seq: ep, dist: cosineDistance(query, idx.nodes[ep].vec)}
	visited := map[int]bool{ep: true}
	frontier := []candidate{start}
	results := []candidate{start}

	for len(frontier) > 0 {
		c := frontier[0]
		frontier = frontier[1:]

		if len(results) >= ef && c.dist > results[len(results)-1].dist {
			continue
		}

		for _, nb := range idx.nodes[c.seq].neighbors[level] {
			if visited[nb] {
				continue
			}
			visited[nb] = true

			d := cosineDistance(query, idx.nodes[nb].vec)
			if len(results) < ef || d < results[len(results)-1].dist {
				next := candidate{seq: nb, dist: d}
				frontier = append(frontier, next)
				results = append(results, next)

				sort.Slice(results, func(i, j int) bool { return closer(results[i], results[j]) })
				if len(results) > ef {
					results = results[:ef]
				}
				sort.Slice(frontier, func(i, j int) bool { return closer(frontier[i], frontier[j]) })
			}
		}
	}
	return results
}

// closer orders candidates by distance ascending, ties by earlier
// insertion.
func closer(a, b candidate) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.seq < b.seq
}

// Len returns the number of stored entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.nodes)
}

// Dimensions returns the index's fixed vector dimension.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}

// Clear removes all entries and resets the graph. The dimension is
// unchanged.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.nodes = nil
	idx.entryPoint = 0
	idx.topLevel = -1
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.Clear()
	return nil
}

// randomLevel draws a level from a geometric distribution.
func randomLevel() int {
	lvl := 0
	for rand.Float64() < levelProbability && lvl < maxLevelCap {
		lvl++
	}
	return lvl
}

// cosineDistance is 1 minus the cosine similarity, so identical
// directions are at distance 0. Zero-norm vectors sit at distance 1.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
