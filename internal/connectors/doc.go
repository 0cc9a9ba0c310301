// Package connectors groups the adapters that bring external content
// into loupe. Each subpackage handles one source: filesystem walks and
// watches local directories as a corpus source, web fetches pages over
// HTTP with optional caching, and github fetches repository files and
// issues through the GitHub API.
package connectors
