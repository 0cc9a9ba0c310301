package driving

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// ConvertService converts files between text-shaped formats.
type ConvertService interface {
	// Convert reads the request's input file, converts it to the
	// target format, and writes the output file.
	Convert(ctx context.Context, req domain.ConvertRequest) (*domain.ConvertResult, error)
}
