package driving

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// ClassifyService determines the intent of email texts using
// rule-based pattern matching.
type ClassifyService interface {
	// Classify determines the primary and secondary intents of one email.
	Classify(ctx context.Context, text string) (*domain.IntentResult, error)

	// ClassifyBatch classifies several emails and aggregates the
	// intent distribution.
	ClassifyBatch(ctx context.Context, texts []string) (*domain.IntentBatch, error)

	// Features extracts surface signals from an email text.
	Features(ctx context.Context, text string) (*domain.EmailFeatures, error)
}
