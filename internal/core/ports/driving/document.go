package driving

import (
	"context"
	"time"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// DocumentService exposes the ingested working set for display.
type DocumentService interface {
	// List returns all ingested documents in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the document's full text.
	GetContent(ctx context.Context, documentID string) (string, error)

	// GetDetails returns display metadata for a document.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)
}

// DocumentDetails provides a standardised view of document metadata.
type DocumentDetails struct {
	// ID is the unique document identifier.
	ID string

	// Title is the document title.
	Title string

	// Origin is where the document came from.
	Origin string

	// ChunkCount is the number of chunks.
	ChunkCount int

	// WordCount is the word count of the full content.
	WordCount int

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time

	// Metadata contains key-value pairs for display.
	Metadata map[string]string
}
