// Package mcp provides the Model Context Protocol server adapter for
// loupe. It exposes search, ingestion, and the text utilities as typed
// tools that AI assistants can call over stdio or HTTP.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
