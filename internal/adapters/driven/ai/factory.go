// Package ai assembles embedding services from user settings. It maps
// the configured provider to the matching adapter and checks that
// remote providers are actually reachable before handing them out.
package ai

import (
	"context"
	"fmt"
	"time"

	hashembed "github.com/loupe-labs/loupe-cli/internal/adapters/driven/embedding/hash"
	ollamaembed "github.com/loupe-labs/loupe-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/loupe-labs/loupe-cli/internal/adapters/driven/embedding/openai"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService builds the configured embedding
// service and pings it once. Unconfigured settings yield (nil, nil);
// an unreachable provider yields an error that tells the user how to
// fix it.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'loupe settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'loupe settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// ValidateEmbeddingConfig builds a throwaway service and pings it.
// The settings wizard calls this before saving new credentials.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService builds the adapter for the configured
// provider without any connectivity check. Unconfigured settings
// yield (nil, nil).
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.EmbeddingProviderHash:
		return createHashEmbedding(settings), nil
	case domain.EmbeddingProviderOllama:
		return createOllamaEmbedding(settings), nil
	case domain.EmbeddingProviderOpenAI:
		return createOpenAIEmbedding(settings)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

func createHashEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := settings.Dimensions
	if dimensions == 0 {
		// The hash model name encodes its dimension, e.g. "fnv-256".
		// A non-matching name leaves dimensions at 0 and the adapter
		// falls back to its default.
		_, _ = fmt.Sscanf(settings.Model, "fnv-%d", &dimensions)
	}
	return hashembed.NewEmbeddingService(dimensions)
}

func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
		Timeout:    time.Duration(settings.TimeoutSeconds) * time.Second,
	})
}

func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
		Timeout:    time.Duration(settings.TimeoutSeconds) * time.Second,
	})
}
