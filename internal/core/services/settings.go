package services

import (
	"fmt"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySearchMode       = "search.mode"
	keySearchTopK       = "search.top_k"
	keySearchThreshold  = "search.threshold"
	keySearchDedup      = "search.dedup"
	keySearchOversample = "search.oversample"
	keyChunkSize        = "chunker.chunk_size"
	keyChunkOverlap     = "chunker.overlap"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedDims        = "embedding.dimensions"
	keyEmbedTimeout     = "embedding.timeout_seconds"
	keyIndexKind        = "index.kind"
	keyFetchTimeout     = "fetch.timeout_seconds"
	keyFetchCache       = "fetch.cache"
	keyFetchCacheTTL    = "fetch.cache_ttl_minutes"
	keyFetchUserAgent   = "fetch.user_agent"
	keyGitHubToken      = "github.token"
)

// defaultOllamaBaseURL is applied when switching to ollama without one.
const defaultOllamaBaseURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validator   driven.EmbeddingConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, validator driven.EmbeddingConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validator:   validator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Search: domain.SearchSettings{
			Mode:            s.getSearchMode(defaults.Search.Mode),
			TopK:            s.getInt(keySearchTopK, defaults.Search.TopK),
			Threshold:       s.getThreshold(),
			DedupByDocument: s.getBool(keySearchDedup, defaults.Search.DedupByDocument),
			Oversample:      s.getInt(keySearchOversample, defaults.Search.Oversample),
		},
		Chunker: domain.ChunkerSettings{
			ChunkSize: s.getInt(keyChunkSize, defaults.Chunker.ChunkSize),
			Overlap:   s.getInt(keyChunkOverlap, defaults.Chunker.Overlap),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for hash and cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
			// Zero dimensions means "derive from the model".
			Dimensions:     s.configStore.GetInt(keyEmbedDims),
			TimeoutSeconds: s.getInt(keyEmbedTimeout, defaults.Embedding.TimeoutSeconds),
		},
		Index: s.getIndexKind(defaults.Index),
		Fetch: domain.FetchSettings{
			TimeoutSeconds:  s.getInt(keyFetchTimeout, defaults.Fetch.TimeoutSeconds),
			CacheEnabled:    s.getBool(keyFetchCache, defaults.Fetch.CacheEnabled),
			CacheTTLMinutes: s.getInt(keyFetchCacheTTL, defaults.Fetch.CacheTTLMinutes),
			UserAgent:       s.getString(keyFetchUserAgent, defaults.Fetch.UserAgent),
			GitHubToken:     s.configStore.GetString(keyGitHubToken),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	// Save search settings
	if err := s.configStore.Set(keySearchMode, settings.Search.Mode.String()); err != nil {
		return fmt.Errorf("save search mode: %w", err)
	}
	if err := s.configStore.Set(keySearchTopK, settings.Search.TopK); err != nil {
		return fmt.Errorf("save search top_k: %w", err)
	}
	if settings.Search.Threshold != nil {
		if err := s.configStore.Set(keySearchThreshold, *settings.Search.Threshold); err != nil {
			return fmt.Errorf("save search threshold: %w", err)
		}
	}
	if err := s.configStore.Set(keySearchDedup, settings.Search.DedupByDocument); err != nil {
		return fmt.Errorf("save search dedup: %w", err)
	}
	if err := s.configStore.Set(keySearchOversample, settings.Search.Oversample); err != nil {
		return fmt.Errorf("save search oversample: %w", err)
	}

	// Save chunker settings
	if err := s.configStore.Set(keyChunkSize, settings.Chunker.ChunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Chunker.Overlap); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if settings.Embedding.Dimensions > 0 {
		if err := s.configStore.Set(keyEmbedDims, settings.Embedding.Dimensions); err != nil {
			return fmt.Errorf("save embedding dimensions: %w", err)
		}
	}
	if err := s.configStore.Set(keyEmbedTimeout, settings.Embedding.TimeoutSeconds); err != nil {
		return fmt.Errorf("save embedding timeout: %w", err)
	}

	// Save index settings
	if err := s.configStore.Set(keyIndexKind, settings.Index.String()); err != nil {
		return fmt.Errorf("save index kind: %w", err)
	}

	// Save fetch settings
	if err := s.configStore.Set(keyFetchTimeout, settings.Fetch.TimeoutSeconds); err != nil {
		return fmt.Errorf("save fetch timeout: %w", err)
	}
	if err := s.configStore.Set(keyFetchCache, settings.Fetch.CacheEnabled); err != nil {
		return fmt.Errorf("save fetch cache: %w", err)
	}
	if err := s.configStore.Set(keyFetchCacheTTL, settings.Fetch.CacheTTLMinutes); err != nil {
		return fmt.Errorf("save fetch cache ttl: %w", err)
	}
	if err := s.configStore.Set(keyFetchUserAgent, settings.Fetch.UserAgent); err != nil {
		return fmt.Errorf("save fetch user_agent: %w", err)
	}
	if settings.Fetch.GitHubToken != "" {
		if err := s.configStore.Set(keyGitHubToken, settings.Fetch.GitHubToken); err != nil {
			return fmt.Errorf("save github token: %w", err)
		}
	}

	return nil
}

// SetSearchMode updates the search mode.
func (s *SettingsService) SetSearchMode(mode domain.SearchMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid search mode: %s", mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Search.Mode = mode

	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.EmbeddingProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		defaults := domain.DefaultEmbeddingModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.Embedding.Model = defaultModel
		}
	}

	// Only ollama talks to a configurable local endpoint. The hash
	// provider runs in process and openai uses its fixed API host.
	if provider == domain.EmbeddingProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = defaultOllamaBaseURL
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	// Set API key
	settings.Embedding.APIKey = apiKey

	// Update vector dimensions based on model
	dims := domain.EmbeddingDimensions()
	if d, ok := dims[settings.Embedding.Model]; ok {
		settings.Embedding.Dimensions = d
	}

	return s.Save(settings)
}

// SetIndexKind updates the vector index implementation.
func (s *SettingsService) SetIndexKind(kind domain.IndexKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("invalid index kind: %s", kind)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Index = kind

	return s.Save(settings)
}

// Validate checks if current settings are valid for the configured mode.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	// Validate search mode
	if !settings.Search.Mode.IsValid() {
		return fmt.Errorf("invalid search mode: %s", settings.Search.Mode)
	}

	// Validate chunker geometry
	if settings.Chunker.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", settings.Chunker.ChunkSize)
	}
	if settings.Chunker.Overlap >= settings.Chunker.ChunkSize {
		return fmt.Errorf(
			"chunk overlap %d must be smaller than chunk size %d",
			settings.Chunker.Overlap, settings.Chunker.ChunkSize,
		)
	}

	// Check embedding configuration if required
	if settings.Search.Mode.RequiresEmbedding() {
		if !settings.Embedding.IsConfigured() {
			return fmt.Errorf(
				"search mode %q requires embedding provider to be configured",
				settings.Search.Mode.Description(),
			)
		}
	}

	if !settings.Index.IsValid() {
		return fmt.Errorf("invalid index kind: %s", settings.Index)
	}

	return nil
}

// RequiresEmbedding returns true if current mode needs embedding.
func (s *SettingsService) RequiresEmbedding() bool {
	settings, err := s.Get()
	if err != nil {
		return false
	}
	return settings.Search.Mode.RequiresEmbedding()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.validator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.validator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getThreshold returns nil when no threshold is configured. A nil
// threshold means "keep everything"; zero is a real cutoff.
func (s *SettingsService) getThreshold() *float64 {
	if _, exists := s.configStore.Get(keySearchThreshold); !exists {
		return nil
	}
	val := s.configStore.GetFloat(keySearchThreshold)
	return &val
}

func (s *SettingsService) getSearchMode(defaultVal domain.SearchMode) domain.SearchMode {
	val := s.configStore.GetString(keySearchMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.SearchMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getProvider(defaultVal domain.EmbeddingProvider) domain.EmbeddingProvider {
	val := s.configStore.GetString(keyEmbedProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.EmbeddingProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getIndexKind(defaultVal domain.IndexKind) domain.IndexKind {
	val := s.configStore.GetString(keyIndexKind)
	if val == "" {
		return defaultVal
	}
	kind := domain.IndexKind(val)
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}
