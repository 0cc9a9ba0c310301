package driven

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// PageFetcher retrieves remote content. Implementations handle rate
// limiting, caching, and host-specific routing behind this port.
type PageFetcher interface {
	// Fetch retrieves a URL and returns its content per the options.
	// Transport failures wrap domain.ErrFetchFailed.
	Fetch(ctx context.Context, url string, opts domain.FetchOptions) (*domain.FetchedPage, error)

	// Links returns every anchor on the page with absolutised targets.
	Links(ctx context.Context, url string) ([]domain.Link, error)
}
