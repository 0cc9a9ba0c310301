package search

import "errors"

// ErrNoSearchService indicates the view was built without a search
// service, so queries cannot run.
var ErrNoSearchService = errors.New("search: no search service configured")
