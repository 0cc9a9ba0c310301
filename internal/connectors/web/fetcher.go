// Package web fetches remote pages over HTTP with rate limiting and
// a persistent response cache. GitHub repository URLs are routed
// through the API instead of scraping the HTML pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/loupe-labs/loupe-cli/internal/connectors/github"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
	"github.com/loupe-labs/loupe-cli/internal/logger"
	"github.com/loupe-labs/loupe-cli/internal/metrics"
	"github.com/loupe-labs/loupe-cli/internal/normalisers/html"
	"github.com/loupe-labs/loupe-cli/internal/normalisers/markdown"
)

const (
	// requestsPerSecond spaces outbound fetches per host process.
	requestsPerSecond = 2

	// requestBurst lets short fetch bursts through unthrottled.
	requestBurst = 4

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 10 << 20
)

// Config assembles a Fetcher. Cache, GitHub, and Metrics are all
// optional; a nil Cache disables caching and a nil GitHub routes
// every URL over plain HTTP.
type Config struct {
	Settings domain.FetchSettings
	Cache    driven.FetchCache
	GitHub   *github.Fetcher
	Metrics  *metrics.Metrics
}

// Fetcher retrieves web pages. Raw bodies are cached so one entry
// serves every option combination, with extraction applied on the
// way out.
type Fetcher struct {
	settings domain.FetchSettings
	cache    driven.FetchCache
	github   *github.Fetcher
	metrics  *metrics.Metrics
	client   *http.Client
	limiter  *rate.Limiter
}

var _ driven.PageFetcher = (*Fetcher)(nil)

// NewFetcher creates a web fetcher from the given configuration.
func NewFetcher(cfg Config) *Fetcher {
	settings := cfg.Settings
	if settings.TimeoutSeconds <= 0 {
		settings.TimeoutSeconds = 30
	}
	if settings.UserAgent == "" {
		settings.UserAgent = domain.DefaultUserAgent
	}

	return &Fetcher{
		settings: settings,
		cache:    cfg.Cache,
		github:   cfg.GitHub,
		metrics:  cfg.Metrics,
		client:   &http.Client{Timeout: time.Duration(settings.TimeoutSeconds) * time.Second},
		limiter:  rate.NewLimiter(requestsPerSecond, requestBurst),
	}
}

// Fetch retrieves a URL, from cache when a fresh entry exists.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, opts domain.FetchOptions) (*domain.FetchedPage, error) {
	ttl := time.Duration(f.settings.CacheTTLMinutes) * time.Minute

	if f.cache != nil && !opts.BypassCache {
		entry, err := f.cache.Get(ctx, rawURL, ttl)
		if err == nil {
			f.metrics.RecordFetchCache(true)
			return f.buildPage(entry, opts, true), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Cache lookup for %s failed: %v", rawURL, err)
		}
		f.metrics.RecordFetchCache(false)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	entry, err := f.retrieve(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, entry); err != nil {
			logger.Warn("Failed to cache %s: %v", rawURL, err)
		}
	}
	return f.buildPage(entry, opts, false), nil
}

// Links fetches a page and returns its anchors.
func (f *Fetcher) Links(ctx context.Context, rawURL string) ([]domain.Link, error) {
	page, err := f.Fetch(ctx, rawURL, domain.FetchOptions{IncludeLinks: true})
	if err != nil {
		return nil, err
	}
	return page.Links, nil
}

func (f *Fetcher) retrieve(ctx context.Context, rawURL string) (*driven.CachedFetch, error) {
	if f.github.Matches(rawURL) {
		content, contentType, err := f.github.Fetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return &driven.CachedFetch{
			URL:         rawURL,
			StatusCode:  http.StatusOK,
			ContentType: contentType,
			Body:        content,
			FetchedAt:   time.Now().UTC(),
		}, nil
	}
	return f.fetchHTTP(ctx, rawURL)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) (*driven.CachedFetch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", f.settings.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrFetchFailed, rawURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	contentType, _, _ = strings.Cut(contentType, ";")

	return &driven.CachedFetch{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: strings.TrimSpace(contentType),
		Body:        string(body),
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// buildPage applies the fetch options to a raw cached entry.
func (f *Fetcher) buildPage(entry *driven.CachedFetch, opts domain.FetchOptions, fromCache bool) *domain.FetchedPage {
	page := &domain.FetchedPage{
		URL:         entry.URL,
		StatusCode:  entry.StatusCode,
		ContentType: entry.ContentType,
		Content:     entry.Body,
		FetchedAt:   entry.FetchedAt,
		FromCache:   fromCache,
	}

	isHTML := strings.Contains(entry.ContentType, "html")
	isMarkdown := strings.Contains(entry.ContentType, "markdown")

	switch {
	case f.github.Matches(entry.URL):
		page.Title = f.github.Title(entry.URL)
	case isHTML:
		page.Title = html.ExtractTitle(entry.Body)
	}

	if opts.TextOnly {
		switch {
		case isHTML:
			page.Content = html.StripHTML(entry.Body)
		case isMarkdown:
			page.Content = markdown.StripMarkdown(entry.Body)
		}
	}

	if opts.IncludeLinks && isHTML {
		page.Links = extractLinks(entry.Body, entry.URL)
	}
	return page
}
