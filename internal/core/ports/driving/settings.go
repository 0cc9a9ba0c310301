package driving

import "github.com/loupe-labs/loupe-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetSearchMode updates the search mode.
	SetSearchMode(mode domain.SearchMode) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.EmbeddingProvider, model, apiKey string) error

	// SetIndexKind updates the vector index implementation.
	SetIndexKind(kind domain.IndexKind) error

	// Validate checks if current settings are valid for the configured mode.
	Validate() error

	// RequiresEmbedding returns true if the current mode needs embedding.
	RequiresEmbedding() bool

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// ValidateEmbeddingConfig validates the current embedding configuration
	// by pinging the provider.
	ValidateEmbeddingConfig() error
}
