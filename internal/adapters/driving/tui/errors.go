package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingDatasetService is returned when the dataset service is not provided.
var ErrMissingDatasetService = errors.New("tui: dataset service is required")

// ErrMissingDebouncer is returned when the search debouncer is not provided.
var ErrMissingDebouncer = errors.New("tui: search debouncer is required")

// ErrInvalidPorts is returned when no ports are supplied at all.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
