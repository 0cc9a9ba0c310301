package driven

import (
	"context"
	"time"
)

// FetchCache stores fetched web pages so repeated fetches of the same
// URL within the TTL can be served locally. This is the only persistent
// store in the application; search indexes are rebuilt per session.
type FetchCache interface {
	// Get returns the cached entry for a URL, or domain.ErrNotFound
	// if the URL is absent or the entry is older than the TTL.
	Get(ctx context.Context, url string, ttl time.Duration) (*CachedFetch, error)

	// Put stores or replaces the cached entry for a URL.
	Put(ctx context.Context, entry *CachedFetch) error

	// Purge removes entries older than the TTL. Returns the number removed.
	Purge(ctx context.Context, ttl time.Duration) (int64, error)

	// Close releases the underlying store.
	Close() error
}

// CachedFetch is a single cached web fetch.
type CachedFetch struct {
	// URL is the fetched URL, the cache key.
	URL string

	// StatusCode is the HTTP status of the original fetch.
	StatusCode int

	// ContentType is the Content-Type header of the original fetch.
	ContentType string

	// Body is the raw fetched payload. Extraction happens after
	// retrieval so one entry serves every option combination.
	Body string

	// FetchedAt records when the fetch happened.
	FetchedAt time.Time
}
