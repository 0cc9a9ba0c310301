package driving

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// SearchService ingests documents and answers similarity queries
// over them.
type SearchService interface {
	// Ingest chunks, embeds, and indexes one document. An empty
	// doc.ID gets a generated ID. A document that yields no chunks
	// is stored with a zero chunk count. Re-ingesting identical
	// content indexes it again.
	Ingest(ctx context.Context, doc domain.Document) (*domain.IngestReceipt, error)

	// Query returns ranked results for a query text. Blank query text
	// is ErrInvalidInput. An empty index yields an empty slice, not an
	// error.
	Query(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.QueryResult, error)

	// Similar returns chunks most similar to a document's content,
	// excluding the document itself.
	Similar(ctx context.Context, documentID string, topK int) ([]domain.QueryResult, error)

	// Reset discards every document, chunk, and index entry. The
	// configured dimension and mode are unchanged.
	Reset(ctx context.Context) error

	// Stats reports a snapshot of the corpus and index.
	Stats(ctx context.Context) (*domain.IndexStats, error)
}
