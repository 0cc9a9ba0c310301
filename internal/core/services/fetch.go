package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
)

// Ensure FetchService implements the interface.
var _ driving.FetchService = (*FetchService)(nil)

// FetchService retrieves remote content through a PageFetcher. Rate
// limiting, caching, and host routing live behind that port.
type FetchService struct {
	fetcher driven.PageFetcher
}

// NewFetchService creates a new fetch service.
func NewFetchService(fetcher driven.PageFetcher) *FetchService {
	return &FetchService{fetcher: fetcher}
}

// Fetch retrieves a URL's content.
func (s *FetchService) Fetch(ctx context.Context, url string, opts domain.FetchOptions) (*domain.FetchedPage, error) {
	if err := validateFetchURL(url); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", domain.ErrFetchFailed)
	}

	page, err := s.fetcher.Fetch(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetch: %s status=%d cached=%t content=%d chars",
		url, page.StatusCode, page.FromCache, len(page.Content))

	return page, nil
}

// Links returns the anchors found on a page.
func (s *FetchService) Links(ctx context.Context, url string) ([]domain.Link, error) {
	if err := validateFetchURL(url); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", domain.ErrFetchFailed)
	}

	return s.fetcher.Links(ctx, url)
}

func validateFetchURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: url is empty", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: url must start with http:// or https://", domain.ErrInvalidInput)
	}
	return nil
}
