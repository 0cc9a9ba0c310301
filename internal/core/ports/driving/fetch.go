package driving

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// FetchService retrieves remote content for display or ingestion.
type FetchService interface {
	// Fetch retrieves a URL's content.
	Fetch(ctx context.Context, url string, opts domain.FetchOptions) (*domain.FetchedPage, error)

	// Links returns the anchors found on a page.
	Links(ctx context.Context, url string) ([]domain.Link, error)
}
