package driving

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// KPIService computes key performance indicators from business data.
type KPIService interface {
	// Generate parses a JSON object of business figures and computes
	// the requested metric groups. Nil metrics means the defaults.
	Generate(ctx context.Context, data string, metrics []domain.KPIMetric) (*domain.KPIReport, error)
}
