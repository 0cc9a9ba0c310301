package driven

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// DocumentStore holds the in-memory working set of documents and chunks.
// The Search Service owns the store's lifecycle; Clear implements Reset.
type DocumentStore interface {
	// SaveDocument stores a document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// SaveChunks stores chunks for a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunk retrieves a chunk by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents in insertion order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Counts reports the stored document and chunk totals.
	Counts(ctx context.Context) (documents int, chunks int, err error)

	// Clear removes all documents and chunks.
	Clear(ctx context.Context) error
}
