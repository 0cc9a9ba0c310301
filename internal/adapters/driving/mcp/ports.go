package mcp

import (
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search answers queries and ingests documents.
	Search driving.SearchService

	// Document exposes the ingested working set.
	Document driving.DocumentService

	// Extract performs text extraction operations.
	Extract driving.ExtractService

	// Fetch retrieves remote content.
	Fetch driving.FetchService

	// Classify determines email intents.
	Classify driving.ClassifyService

	// KPI computes business indicators.
	KPI driving.KPIService

	// Chart renders tabular data as text charts.
	Chart driving.ChartService

	// Convert converts files between text formats.
	Convert driving.ConvertService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// The remaining ports are optional; their tools and resources
	// register only when set.
	return nil
}
