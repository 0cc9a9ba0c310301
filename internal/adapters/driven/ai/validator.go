package ai

import (
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

var _ driven.EmbeddingConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator adapts the package-level validation function to the
// port the settings service depends on.
type ConfigValidator struct{}

// NewConfigValidator creates an embedding config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding pings the provider described by the configuration.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(config)
}
