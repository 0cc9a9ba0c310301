package plaintext

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/yaml",
		"text/toml",
		"text/javascript",
		"text/css",
		"text/x-go",
		"text/x-python",
		"text/x-shellscript",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts a raw document to a normalised document.
// The Content field contains the full text content unchanged.
// Chunking happens later, during ingestion.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	// Prefer a title set by the source, fall back to the URI
	title := titleFromMetadataOrURI(raw)

	doc := domain.Document{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   string(raw.Content),
		Origin:    raw.URI,
		Metadata:  copyMetadata(raw.Metadata),
		CreatedAt: time.Now(),
	}

	// Record the MIME type for reference
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]string)
	}
	doc.Metadata["mime_type"] = raw.MIMEType

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

// titleFromMetadataOrURI checks metadata for a title first, then falls
// back to the URI. Sources that know the display name set Metadata["title"].
func titleFromMetadataOrURI(raw *domain.RawDocument) string {
	if raw.Metadata != nil {
		if title := raw.Metadata["title"]; title != "" {
			return title
		}
	}
	return titleFromURI(raw.URI)
}

// titleFromURI extracts a human-readable title from a URI.
func titleFromURI(uri string) string {
	// Get filename from path
	filename := filepath.Base(uri)

	// Remove common extensions for cleaner title
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	// Replace underscores and dashes with spaces
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return filename
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
