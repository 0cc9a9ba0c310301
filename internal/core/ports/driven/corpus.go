package driven

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// CorpusSource yields raw documents from a location such as a
// directory tree.
type CorpusSource interface {
	// Load collects every supported document under root.
	Load(ctx context.Context, root string) ([]domain.RawDocument, error)

	// Watch emits change events for documents under root until ctx
	// ends. The returned channel is closed when watching stops.
	Watch(ctx context.Context, root string) (<-chan domain.RawDocumentChange, error)
}
