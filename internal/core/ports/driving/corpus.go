package driving

import "context"

// CorpusService bulk-loads documents from a directory into the index.
type CorpusService interface {
	// LoadDirectory ingests every supported file under root and
	// returns the number of documents ingested.
	LoadDirectory(ctx context.Context, root string) (int, error)

	// WatchDirectory ingests root, then re-ingests documents as
	// they change until ctx ends.
	WatchDirectory(ctx context.Context, root string) error
}
