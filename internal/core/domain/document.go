package domain

import (
	"strings"
	"time"
)

// Document represents an ingested document in the corpus.
type Document struct {
	// ID uniquely identifies the document.
	ID string

	// Title is the human-readable document title.
	Title string

	// Content is the full plain-text content.
	// Immutable once the document has been chunked.
	Content string

	// Origin records where the content came from:
	// a file path, a URL, or "inline" for direct ingestion.
	Origin string

	// Metadata holds provenance-specific key-value pairs.
	Metadata map[string]string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk represents a searchable segment of a document.
// Chunks are the unit of embedding and retrieval.
type Chunk struct {
	// ID uniquely identifies the chunk.
	ID string

	// DocumentID links back to the parent document.
	DocumentID string

	// Content is the chunk's text.
	Content string

	// Position is the chunk's ordinal within the document (0-based).
	Position int

	// StartOffset is the byte offset of the chunk's first word
	// in the parent document's content.
	StartOffset int

	// EndOffset is the byte offset just past the chunk's last word.
	EndOffset int

	// Embedding is the chunk's vector representation.
	// Its length equals the index's fixed dimension.
	Embedding []float32
}

// WordCount returns the number of whitespace-separated words in the chunk.
func (c Chunk) WordCount() int {
	return len(strings.Fields(c.Content))
}
