package domain

const unknownDescription = "Unknown"

// SearchMode defines how queries retrieve candidates.
type SearchMode string

// Available search modes.
const (
	// SearchModeSemantic uses vector similarity only.
	SearchModeSemantic SearchMode = "semantic"

	// SearchModeKeyword uses full-text keyword search only.
	SearchModeKeyword SearchMode = "keyword"

	// SearchModeHybrid fuses keyword and semantic rankings.
	SearchModeHybrid SearchMode = "hybrid"
)

// AllSearchModes returns the modes in presentation order.
func AllSearchModes() []SearchMode {
	return []SearchMode{SearchModeSemantic, SearchModeKeyword, SearchModeHybrid}
}

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeSemantic, SearchModeKeyword, SearchModeHybrid:
		return true
	default:
		return false
	}
}

// RequiresEmbedding returns true if this mode needs an embedding provider.
func (m SearchMode) RequiresEmbedding() bool {
	return m == SearchModeSemantic || m == SearchModeHybrid
}

// RequiresKeywordEngine returns true if this mode needs the keyword engine.
func (m SearchMode) RequiresKeywordEngine() bool {
	return m == SearchModeKeyword || m == SearchModeHybrid
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeSemantic:
		return "Semantic (vector similarity)"
	case SearchModeKeyword:
		return "Keyword (full-text search)"
	case SearchModeHybrid:
		return "Hybrid (keyword + semantic, rank fusion)"
	default:
		return unknownDescription
	}
}

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingProviderHash is the deterministic in-process embedder.
	EmbeddingProviderHash EmbeddingProvider = "hash"

	// EmbeddingProviderOllama is a local Ollama instance.
	EmbeddingProviderOllama EmbeddingProvider = "ollama"

	// EmbeddingProviderOpenAI is the OpenAI cloud API.
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"
)

// AllEmbeddingProviders returns the providers in presentation order.
func AllEmbeddingProviders() []EmbeddingProvider {
	return []EmbeddingProvider{
		EmbeddingProviderHash,
		EmbeddingProviderOllama,
		EmbeddingProviderOpenAI,
	}
}

// DefaultEmbeddingModels maps each provider to its default model.
func DefaultEmbeddingModels() map[EmbeddingProvider]string {
	return map[EmbeddingProvider]string{
		EmbeddingProviderHash:   "fnv-256",
		EmbeddingProviderOllama: "nomic-embed-text",
		EmbeddingProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions maps known model names to their vector dimensions.
// Models not listed here fall back to the provider default.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Hash models
		"fnv-128": 128,
		"fnv-256": 256,
		"fnv-512": 512,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingProviderHash, EmbeddingProviderOllama, EmbeddingProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == EmbeddingProviderOpenAI
}

// IsLocal returns true if this provider runs without network access.
func (p EmbeddingProvider) IsLocal() bool {
	return p == EmbeddingProviderHash
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p EmbeddingProvider) Description() string {
	switch p {
	case EmbeddingProviderHash:
		return "Hash (deterministic, offline)"
	case EmbeddingProviderOllama:
		return "Ollama (local service)"
	case EmbeddingProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// IndexKind selects the vector index implementation.
type IndexKind string

// Available index kinds.
const (
	// IndexKindLinear is the exact linear-scan index, the
	// correctness baseline.
	IndexKindLinear IndexKind = "linear"

	// IndexKindHNSW is the approximate graph index. It trades
	// recall for query latency on large corpora.
	IndexKindHNSW IndexKind = "hnsw"
)

// IsValid returns true if the index kind is recognised.
func (k IndexKind) IsValid() bool {
	return k == IndexKindLinear || k == IndexKindHNSW
}

// String returns the string representation.
func (k IndexKind) String() string {
	return string(k)
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Mode is the retrieval mode.
	Mode SearchMode

	// TopK is the default result count.
	TopK int

	// Threshold is the minimum raw score, nil when unset.
	Threshold *float64

	// DedupByDocument enables document-level result diversity.
	DedupByDocument bool

	// Oversample is the internal candidate pool floor; queries
	// fetch max(TopK, Oversample) candidates before ranking.
	Oversample int
}

// ChunkerSettings holds chunking configuration.
type ChunkerSettings struct {
	// ChunkSize is the window size in words.
	ChunkSize int

	// Overlap is the shared word count between consecutive chunks.
	Overlap int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding backend.
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions overrides the provider's default dimension when > 0.
	Dimensions int

	// TimeoutSeconds bounds each provider call.
	TimeoutSeconds int
}

// IsConfigured returns true if the embedding provider is usable.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// FetchSettings holds web fetcher configuration.
type FetchSettings struct {
	// TimeoutSeconds bounds each remote request.
	TimeoutSeconds int

	// CacheEnabled toggles the sqlite response cache.
	CacheEnabled bool

	// CacheTTLMinutes is how long cached responses stay fresh.
	CacheTTLMinutes int

	// UserAgent is sent with every request.
	UserAgent string

	// GitHubToken authenticates GitHub API fetches when set.
	GitHubToken string
}

// Settings aggregates all runtime configuration, fixed at process start.
type Settings struct {
	Search    SearchSettings
	Chunker   ChunkerSettings
	Embedding EmbeddingSettings
	Index     IndexKind
	Fetch     FetchSettings
}

// DefaultUserAgent is sent with web fetches unless overridden. A
// browser-like agent avoids the bot blocks that plain Go agents hit.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultSettings returns the configuration used when nothing is set.
// The hash embedder keeps the default install fully offline.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			Mode:       SearchModeSemantic,
			TopK:       5,
			Oversample: 20,
		},
		Chunker: ChunkerSettings{
			ChunkSize: 200,
			Overlap:   40,
		},
		Embedding: EmbeddingSettings{
			Provider:       EmbeddingProviderHash,
			Model:          "fnv-256",
			TimeoutSeconds: 30,
		},
		Index: IndexKindLinear,
		Fetch: FetchSettings{
			TimeoutSeconds:  30,
			CacheEnabled:    true,
			CacheTTLMinutes: 15,
			UserAgent:       DefaultUserAgent,
		},
	}
}
