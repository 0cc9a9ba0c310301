// Package tui provides an interactive terminal user interface for loupe.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs queries and reports index statistics.
	Search driving.SearchService

	// Document loads full document content for the content view.
	Document driving.DocumentService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, document driving.DocumentService) *Ports {
	return &Ports{
		Search:   search,
		Document: document,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
