// Package filesystem loads documents from a local directory tree and
// watches it for changes.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
	"github.com/loupe-labs/loupe-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.CorpusSource = (*Connector)(nil)

// mimeTypes maps supported file extensions to MIME types. Anything
// else is skipped during loading and watching.
var mimeTypes = map[string]string{
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
}

// watchBuffer absorbs bursts of filesystem events while the consumer
// is busy ingesting.
const watchBuffer = 16

// Connector reads documents from a directory tree.
type Connector struct{}

// New creates a new filesystem connector.
func New() *Connector {
	return &Connector{}
}

// Load collects every supported document under root. Hidden files and
// directories are skipped; unreadable files are logged and skipped.
func (c *Connector) Load(ctx context.Context, root string) ([]domain.RawDocument, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %s does not exist", domain.ErrNotFound, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	var raws []domain.RawDocument
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		name := entry.Name()
		if entry.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
		if !ok {
			return nil
		}

		raw, err := readDocument(path, mimeType)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		raws = append(raws, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Filesystem: loaded %d documents from %s", len(raws), root)
	return raws, nil
}

// Watch emits change events for documents under root until ctx ends.
// The returned channel is closed when watching stops.
func (c *Connector) Watch(ctx context.Context, root string) (<-chan domain.RawDocumentChange, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %s does not exist", domain.ErrNotFound, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// fsnotify does not recurse, so register every subdirectory.
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}

	out := make(chan domain.RawDocumentChange, watchBuffer)
	go forwardEvents(ctx, watcher, out)

	logger.Debug("Filesystem: watching %s", root)
	return out, nil
}

func forwardEvents(ctx context.Context, watcher *fsnotify.Watcher, out chan<- domain.RawDocumentChange) {
	defer close(out)
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			change, ok := mapEvent(watcher, event)
			if !ok {
				continue
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// mapEvent converts one fsnotify event to a document change. New
// directories join the watch set instead of producing an event.
func mapEvent(watcher *fsnotify.Watcher, event fsnotify.Event) (domain.RawDocumentChange, bool) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return domain.RawDocumentChange{}, false
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				logger.Warn("Watch %s: %v", event.Name, err)
			}
			return domain.RawDocumentChange{}, false
		}
	}

	mimeType, supported := mimeTypes[strings.ToLower(filepath.Ext(name))]
	if !supported {
		return domain.RawDocumentChange{}, false
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		raw, err := readDocument(event.Name, mimeType)
		if err != nil {
			// The file may already be gone again.
			return domain.RawDocumentChange{}, false
		}
		changeType := domain.ChangeUpdated
		if event.Op.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return domain.RawDocumentChange{Type: changeType, Document: raw}, true

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return domain.RawDocumentChange{
			Type:     domain.ChangeRemoved,
			Document: domain.RawDocument{URI: event.Name},
		}, true

	default:
		return domain.RawDocumentChange{}, false
	}
}

func readDocument(path, mimeType string) (domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawDocument{}, err
	}
	return domain.RawDocument{
		URI:      path,
		MIMEType: mimeType,
		Content:  content,
		Metadata: map[string]string{
			"filename":  filepath.Base(path),
			"extension": strings.TrimPrefix(filepath.Ext(path), "."),
		},
	}, nil
}
