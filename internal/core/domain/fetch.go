package domain

import "time"

// FetchOptions tunes a remote content fetch.
type FetchOptions struct {
	// TextOnly strips markup from HTML and Markdown responses and
	// returns readable text. Other content is always returned raw.
	TextOnly bool

	// IncludeLinks collects the page's anchors alongside the content.
	IncludeLinks bool

	// BypassCache forces a network fetch even when a fresh cached
	// copy exists.
	BypassCache bool
}

// Link is one anchor found on a fetched page.
type Link struct {
	// Text is the anchor's visible text, whitespace-collapsed.
	Text string

	// HRef is the absolutised link target.
	HRef string
}

// FetchedPage is the outcome of fetching a URL.
type FetchedPage struct {
	// URL is the fetched URL.
	URL string

	// Title is the page title when one could be determined.
	Title string

	// StatusCode is the HTTP status of the fetch.
	StatusCode int

	// ContentType is the response Content-Type, without parameters.
	ContentType string

	// Content is the page content, extracted text or raw body
	// depending on FetchOptions.TextOnly.
	Content string

	// Links holds the page's anchors when requested.
	Links []Link

	// FetchedAt is when the content was retrieved from the network.
	FetchedAt time.Time

	// FromCache reports that the content was served from the
	// local fetch cache.
	FromCache bool
}
