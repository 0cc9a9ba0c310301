package driving

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// ExtractService performs text extraction operations.
type ExtractService interface {
	// Extract applies one operation to a text.
	Extract(ctx context.Context, text string, op domain.ExtractOperation, opts domain.ExtractOptions) (*domain.ExtractResult, error)

	// ExtractBatch applies one operation to several texts, preserving
	// input order. A failing item does not fail its neighbours.
	ExtractBatch(ctx context.Context, texts []string, op domain.ExtractOperation, opts domain.ExtractOptions) []ExtractOutcome
}

// ExtractOutcome is one item of a batch extraction.
type ExtractOutcome struct {
	// Result is the item's extraction result when Err is nil.
	Result *domain.ExtractResult

	// Err is the item's failure, nil on success.
	Err error
}
