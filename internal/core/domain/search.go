package domain

// QueryOptions configures a similarity query.
type QueryOptions struct {
	// TopK is the maximum number of results. Zero means the
	// service default.
	TopK int

	// Threshold drops results scoring below it when set.
	// Applies to raw cosine scores in semantic mode only.
	Threshold *float64

	// DedupByDocument keeps at most one result per document,
	// the highest-scoring chunk.
	DedupByDocument bool
}

// QueryResult represents a single ranked hit.
// Results are transient per query and never persisted.
type QueryResult struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// DocumentID identifies the chunk's parent document.
	DocumentID string

	// Score is the raw cosine similarity in [-1, 1].
	// Presentation layers wanting [0, 1] scale with (score+1)/2.
	Score float64

	// Content is the matched chunk's text.
	Content string

	// Title is the parent document's title.
	Title string

	// Origin is the parent document's provenance.
	Origin string
}

// IngestReceipt reports the outcome of a successful ingestion.
type IngestReceipt struct {
	// DocumentID is the stored document's ID.
	DocumentID string

	// ChunkCount is the number of chunks produced and indexed.
	ChunkCount int
}

// IndexStats is a point-in-time snapshot of the corpus.
type IndexStats struct {
	// Documents is the number of ingested documents.
	Documents int

	// Chunks is the number of stored chunks.
	Chunks int

	// IndexEntries is the vector index's entry count.
	IndexEntries int

	// Dimensions is the index's fixed embedding dimension.
	Dimensions int

	// Model is the embedding model name, empty in keyword mode.
	Model string

	// Mode is the active search mode.
	Mode SearchMode
}
