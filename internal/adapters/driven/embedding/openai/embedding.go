// Package openai embeds text through the OpenAI embeddings API. Unlike
// the Ollama adapter it sends real batches: one request carries every
// text and the response is reassembled by index.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Defaults applied when Config fields are zero.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 60 * time.Second
)

// fallbackDimensions is used for models missing from the table.
const fallbackDimensions = 1536

// modelDimensions maps known embedding models to their native vector
// size.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Config holds the connection settings for the OpenAI API.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// BaseURL overrides the API endpoint, for Azure or compatible
	// providers. Defaults to the public OpenAI endpoint.
	BaseURL string

	// Model names the embedding model, text-embedding-3-small when
	// empty.
	Model string

	// Timeout bounds each request.
	Timeout time.Duration

	// Dimensions requests a reduced vector size. Only the
	// text-embedding-3-* models honour it.
	Dimensions int
}

// EmbeddingService calls the OpenAI embeddings API.
type EmbeddingService struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// NewEmbeddingService creates an OpenAI-backed embedding service. The
// API key is the only required field.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	dims := cfg.Dimensions
	if dims == 0 {
		if known, ok := modelDimensions[cfg.Model]; ok {
			dims = known
		} else {
			dims = fallbackDimensions
		}
	}

	return &EmbeddingService{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: dims,
	}, nil
}

type batchRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type batchItem struct {
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type batchResponse struct {
	Data  []batchItem `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Embed returns the vector for one text via a single-element batch.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("%w: openai: empty response", domain.ErrEmbeddingUnavailable)
	}
	return vecs[0], nil
}

// EmbedBatch embeds all texts in one API call. The response arrives in
// arbitrary order and is reassembled by the index field. Transport
// failures, timeouts, and API errors all wrap
// domain.ErrEmbeddingUnavailable.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	call := batchRequest{Model: s.model, Input: texts}
	// Only the v3 models accept a dimensions parameter; ada rejects it.
	if s.dimensions > 0 && strings.HasPrefix(s.model, "text-embedding-3-") {
		call.Dimensions = s.dimensions
	}

	payload, err := json.Marshal(call)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", domain.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: read response: %v", domain.ErrEmbeddingUnavailable, err)
	}

	var parsed batchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: openai: decode response: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%w: openai: %s", domain.ErrEmbeddingUnavailable, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: openai returned status %d: %s",
			domain.ErrEmbeddingUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	vecs := make([][]float32, len(texts))
	for _, item := range parsed.Data {
		if item.Index < 0 || item.Index >= len(vecs) {
			return nil, fmt.Errorf("%w: openai: index %d out of range", domain.ErrEmbeddingUnavailable, item.Index)
		}
		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		vecs[item.Index] = vec
	}
	return vecs, nil
}

// Dimensions returns the vector size for the configured model.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the configured model name.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping lists models to verify the API key and endpoint without running
// inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: build ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openai: ping returned status %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no resources that outlive it.
func (s *EmbeddingService) Close() error {
	return nil
}
