// Package ollama embeds text through a locally running Ollama server.
// The embeddings API takes one prompt per call, so batches degrade to
// sequential requests.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Defaults applied when Config fields are zero.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultModel      = "nomic-embed-text"
	DefaultTimeout    = 30 * time.Second
	DefaultDimensions = 768
)

// Config holds the connection settings for an Ollama server.
type Config struct {
	// BaseURL is the server address, http://localhost:11434 when empty.
	BaseURL string

	// Model names the embedding model, nomic-embed-text when empty.
	Model string

	// Timeout bounds each request.
	Timeout time.Duration

	// Dimensions is the vector size the model produces. Zero means
	// the nomic-embed-text default of 768.
	Dimensions int
}

// EmbeddingService calls the Ollama embeddings API.
type EmbeddingService struct {
	client     *http.Client
	baseURL    string
	model      string
	dimensions int
}

// NewEmbeddingService creates an Ollama-backed embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

type embedCall struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResult struct {
	Embedding []float64 `json:"embedding"`
}

// Embed returns the vector for one text. Transport failures, timeouts,
// and non-200 statuses all wrap domain.ErrEmbeddingUnavailable.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(embedCall{Model: s.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/api/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama: %v", domain.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama returned status %d", domain.ErrEmbeddingUnavailable, resp.StatusCode)
	}

	var result embedResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: ollama: decode response: %v", domain.ErrEmbeddingUnavailable, err)
	}

	vec := make([]float32, len(result.Embedding))
	for i, v := range result.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// EmbedBatch embeds each text with its own API call, preserving input
// order. The first failure aborts the batch.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		vecs[i] = vec
	}
	return vecs, nil
}

// Dimensions returns the configured vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the configured model name.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping lists the installed models to confirm the server is up without
// running inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: build ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: ping returned status %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no resources that outlive it.
func (s *EmbeddingService) Close() error {
	return nil
}
