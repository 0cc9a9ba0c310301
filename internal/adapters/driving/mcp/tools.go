package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string        `json:"query" jsonschema:"the search query text"`
	TopK      int           `json:"top_k,omitempty" jsonschema:"maximum number of results (default 5)"`
	Threshold *float64      `json:"threshold,omitempty" jsonschema:"minimum raw cosine score to keep a result, semantic mode only"`
	Dedup     bool          `json:"dedup,omitempty" jsonschema:"keep at most one result per document"`
	Corpus    []CorpusEntry `json:"corpus,omitempty" jsonschema:"documents to ingest before querying"`
}

// CorpusEntry is one inline document supplied with a search.
type CorpusEntry struct {
	ID   string `json:"id,omitempty" jsonschema:"optional document ID, generated when absent"`
	Text string `json:"text" jsonschema:"document text to ingest"`
}

// SearchOutput is the output schema for the search and similar tools.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result. Scores are
// presented in [0, 1].
type SearchResultOutput struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
	Text       string  `json:"text"`
	Title      string  `json:"title,omitempty"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	DocumentID string `json:"document_id,omitempty" jsonschema:"optional document ID, generated when absent"`
	Title      string `json:"title,omitempty" jsonschema:"optional document title"`
	Text       string `json:"text" jsonschema:"document text to chunk, embed, and index"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}

// ResetInput is the input schema for the reset tool.
type ResetInput struct{}

// ResetOutput is the output schema for the reset tool.
type ResetOutput struct {
	Cleared bool `json:"cleared"`
}

// SimilarInput is the input schema for the similar tool.
type SimilarInput struct {
	DocumentID string `json:"document_id" jsonschema:"document whose nearest chunks to find"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"maximum number of results (default 5)"`
}

// registerTools registers all tool handlers with the MCP server.
// Utility tools register only when their service is wired.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed documents by meaning, optionally ingesting an inline corpus first",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Index a document for semantic search; re-ingesting identical text indexes it again",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset",
		Description: "Discard every indexed document and chunk",
	}, s.handleReset)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar",
		Description: "Find the chunks most similar to an indexed document",
	}, s.handleSimilar)

	s.registerUtilityTools()
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if input.TopK < 0 {
		return nil, SearchOutput{}, fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidInput)
	}

	for i, entry := range input.Corpus {
		doc := domain.Document{
			ID:      entry.ID,
			Content: entry.Text,
			Origin:  "inline",
		}
		_, err := s.ports.Search.Ingest(ctx, doc)
		s.metrics.RecordIngest(err)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("ingest corpus entry %d: %w", i, err)
		}
	}
	if len(input.Corpus) > 0 {
		s.refreshIndexGauge(ctx)
	}

	opts := domain.QueryOptions{
		TopK:            input.TopK,
		Threshold:       input.Threshold,
		DedupByDocument: input.Dedup,
	}

	start := time.Now()
	results, err := s.ports.Search.Query(ctx, input.Query, opts)
	s.metrics.RecordQuery(time.Since(start), err)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, searchOutput(results), nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	doc := domain.Document{
		ID:      input.DocumentID,
		Title:   input.Title,
		Content: input.Text,
		Origin:  "inline",
	}

	receipt, err := s.ports.Search.Ingest(ctx, doc)
	s.metrics.RecordIngest(err)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	s.refreshIndexGauge(ctx)

	return nil, IngestOutput{
		DocumentID: receipt.DocumentID,
		ChunkCount: receipt.ChunkCount,
	}, nil
}

// handleReset handles the reset tool invocation.
func (s *Server) handleReset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ResetInput,
) (*mcp.CallToolResult, ResetOutput, error) {
	if err := s.ports.Search.Reset(ctx); err != nil {
		return nil, ResetOutput{}, err
	}
	s.metrics.SetIndexEntries(0)

	return nil, ResetOutput{Cleared: true}, nil
}

// handleSimilar handles the similar tool invocation.
func (s *Server) handleSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.DocumentID == "" {
		return nil, SearchOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}
	if input.TopK < 0 {
		return nil, SearchOutput{}, fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidInput)
	}

	start := time.Now()
	results, err := s.ports.Search.Similar(ctx, input.DocumentID, input.TopK)
	s.metrics.RecordQuery(time.Since(start), err)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, searchOutput(results), nil
}

// searchOutput converts ranked results to the tool output shape.
func searchOutput(results []domain.QueryResult) SearchOutput {
	out := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		out.Results[i] = SearchResultOutput{
			ChunkID:    r.ChunkID,
			DocumentID: r.DocumentID,
			Score:      scaleScore(r.Score),
			Text:       r.Content,
			Title:      r.Title,
		}
	}
	return out
}

// scaleScore maps raw cosine similarity in [-1, 1] onto [0, 1] for
// tool consumers.
func scaleScore(score float64) float64 {
	return (score + 1) / 2
}
