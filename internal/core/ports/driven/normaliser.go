package driven

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// Normaliser converts raw content into a plain-text document.
// Each normaliser declares the MIME types it understands; a registry
// picks the highest-priority match for a given type.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority orders normalisers when several support the same MIME
	// type. Higher wins. Catch-all normalisers use a low priority.
	Priority() int

	// Normalise converts raw content into a document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult is the outcome of normalisation.
type NormaliseResult struct {
	// Document is the normalised document. Chunking happens later,
	// during ingestion.
	Document domain.Document
}
