// Package driven holds the secondary ports: the interfaces core
// services call out through, implemented by adapters under
// internal/adapters and internal/connectors.
//
// DocumentStore, VectorIndex, EmbeddingService, Normaliser, and
// ConfigStore are required for a full semantic install. SearchEngine
// is only needed in keyword and hybrid modes, and FetchCache only
// when response caching is on; both may be nil and the services
// degrade accordingly.
//
// This package may import domain and nothing else from the module.
package driven
