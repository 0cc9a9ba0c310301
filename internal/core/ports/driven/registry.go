package driven

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// NormaliserRegistry turns raw bytes into indexable text by routing
// each document to the normaliser that claims its MIME type.
type NormaliserRegistry interface {
	// Normalise runs the best-matching normaliser over a raw document.
	// Returns domain.ErrUnsupportedType when nothing handles the type.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser. Higher Priority wins a MIME type;
	// earlier registration breaks ties.
	Register(normaliser Normaliser)

	// SupportedMIMETypes lists every MIME type some normaliser accepts.
	SupportedMIMETypes() []string
}
