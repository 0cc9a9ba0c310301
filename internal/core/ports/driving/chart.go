package driving

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// ChartService renders tabular data as terminal charts.
type ChartService interface {
	// Render parses the request's data and renders it in the
	// requested style.
	Render(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error)
}
