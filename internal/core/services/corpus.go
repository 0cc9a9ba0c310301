package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService bulk-loads documents from a source into the search
// index: source yields raw documents, the registry normalises them,
// the search service ingests them.
type CorpusService struct {
	source   driven.CorpusSource
	registry driven.NormaliserRegistry
	search   driving.SearchService
}

// NewCorpusService creates a new corpus loading service.
func NewCorpusService(source driven.CorpusSource, registry driven.NormaliserRegistry, search driving.SearchService) *CorpusService {
	return &CorpusService{
		source:   source,
		registry: registry,
		search:   search,
	}
}

// LoadDirectory ingests every supported file under root and returns
// the number of documents ingested. A document that fails to ingest
// is logged and skipped; a degraded search service aborts the load.
func (s *CorpusService) LoadDirectory(ctx context.Context, root string) (int, error) {
	if root == "" {
		return 0, fmt.Errorf("%w: directory is empty", domain.ErrInvalidInput)
	}

	raws, err := s.source.Load(ctx, root)
	if err != nil {
		return 0, fmt.Errorf("load directory: %w", err)
	}

	logger.Info("Loading %d documents from %s", len(raws), root)

	ingested := 0
	failed := 0
	for i := range raws {
		if err := ctx.Err(); err != nil {
			return ingested, err
		}
		if err := s.ingestRaw(ctx, &raws[i]); err != nil {
			if errors.Is(err, domain.ErrServiceDegraded) {
				return ingested, err
			}
			failed++
			logger.Debug("Failed to ingest %s: %v", raws[i].URI, err)
			continue
		}
		ingested++
	}

	logger.Info("Load complete: %d documents, %d errors", ingested, failed)
	return ingested, nil
}

// WatchDirectory ingests root, then re-ingests documents as they
// change until ctx ends.
func (s *CorpusService) WatchDirectory(ctx context.Context, root string) error {
	if _, err := s.LoadDirectory(ctx, root); err != nil {
		return err
	}

	changes, err := s.source.Watch(ctx, root)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	logger.Info("Watching %s for changes", root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case change, ok := <-changes:
			if !ok {
				return nil
			}

			switch change.Type {
			case domain.ChangeCreated, domain.ChangeUpdated:
				logger.Debug("Change %s: %s", change.Type, change.Document.URI)
				if err := s.ingestRaw(ctx, &change.Document); err != nil {
					if errors.Is(err, domain.ErrServiceDegraded) {
						return err
					}
					logger.Warn("Failed to ingest %s: %v", change.Document.URI, err)
				}

			case domain.ChangeRemoved:
				// The index has no per-entry delete; a removal takes
				// effect on the next full reload.
				logger.Debug("Removed %s, reload to drop it from the index", change.Document.URI)
			}
		}
	}
}

// ingestRaw normalises one raw document and hands it to the search
// service.
func (s *CorpusService) ingestRaw(ctx context.Context, raw *domain.RawDocument) error {
	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}

	if _, err := s.search.Ingest(ctx, result.Document); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	return nil
}
