// Package domain holds the entities the rest of loupe is built
// around: Document and Chunk for ingested content, QueryResult for
// ranked hits, RawDocument for bytes awaiting normalisation, and the
// Settings tree that configures the pipeline.
//
// Domain sits at the centre of the hexagon. It imports only the
// standard library; every other package depends on it and never the
// reverse.
package domain
