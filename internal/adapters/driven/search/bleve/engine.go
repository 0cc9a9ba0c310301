// Package bleve provides an in-memory keyword search engine.
//
// The index lives in memory only and is rebuilt per session; nothing
// is persisted between process runs.
package bleve

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine wraps a memory-only bleve index over chunk content.
// The mutex guards the index pointer across Reset; bleve handles
// concurrent reads and writes on a live index itself.
type Engine struct {
	mu    sync.RWMutex
	index bleve.Index
}

// chunkDoc is the indexed representation of one chunk.
type chunkDoc struct {
	Content string `json:"content"`
}

// NewEngine creates an empty in-memory keyword engine.
func NewEngine() (*Engine, error) {
	idx, err := newIndex()
	if err != nil {
		return nil, err
	}
	return &Engine{index: idx}, nil
}

func newIndex() (bleve.Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create keyword index: %w", err)
	}
	return idx, nil
}

// Index adds or replaces a chunk's content.
func (e *Engine) Index(_ context.Context, chunkID string, content string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.index.Index(chunkID, chunkDoc{Content: content}); err != nil {
		return fmt.Errorf("index chunk %s: %w", chunkID, err)
	}
	return nil
}

// Delete removes a chunk from the index.
func (e *Engine) Delete(_ context.Context, chunkID string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.index.Delete(chunkID); err != nil {
		return fmt.Errorf("delete chunk %s: %w", chunkID, err)
	}
	return nil
}

// Search returns up to limit hits ordered by relevance.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]driven.SearchHit, error) {
	if limit <= 0 {
		return nil, nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	hits := make([]driven.SearchHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, driven.SearchHit{ChunkID: h.ID, Score: h.Score})
	}
	return hits, nil
}

// Reset discards all indexed content by swapping in a fresh index.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.index.Close(); err != nil {
		return fmt.Errorf("close keyword index: %w", err)
	}
	idx, err := newIndex()
	if err != nil {
		return err
	}
	e.index = idx
	return nil
}

// Close releases the index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Close()
}
