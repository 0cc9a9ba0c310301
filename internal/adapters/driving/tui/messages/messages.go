// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// SearchCompleted carries query results back to the model.
type SearchCompleted struct {
	Results []domain.QueryResult
	Err     error
}

// ResultSelected is sent when a search result is selected.
type ResultSelected struct {
	Index int
}

// ViewChanged is sent when the active view should change.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies the different views in the TUI.
type ViewType int

const (
	// ViewSearch is the main search view.
	ViewSearch ViewType = iota

	// ViewDocContent shows a document's full text.
	ViewDocContent

	// ViewHelp is the help view.
	ViewHelp
)

// String returns the view name.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewDocContent:
		return "doccontent"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// StatsLoaded carries index statistics for the status bar.
type StatsLoaded struct {
	Stats *domain.IndexStats
	Err   error
}

// DocumentContentLoaded carries loaded document content.
type DocumentContentLoaded struct {
	DocumentID string
	Content    string
	Err        error
}

// ErrorOccurred signals an error to display.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
