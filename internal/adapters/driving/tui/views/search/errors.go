package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoDatasetService indicates that no dataset service was provided.
	ErrNoDatasetService = errors.New("dataset service is required")
)
