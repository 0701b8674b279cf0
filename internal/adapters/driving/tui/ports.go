// Package tui provides an interactive terminal user interface for cityfinder.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks cities for a query and finds neighbours.
	Search driving.SearchService

	// Dataset loads and publishes the city snapshot.
	Dataset driving.DatasetService

	// Debouncer coalesces keystrokes into searches.
	Debouncer driving.SearchDebouncer
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	dataset driving.DatasetService,
	debouncer driving.SearchDebouncer,
) *Ports {
	return &Ports{
		Search:    search,
		Dataset:   dataset,
		Debouncer: debouncer,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Dataset == nil {
		return ErrMissingDatasetService
	}
	if p.Debouncer == nil {
		return ErrMissingDebouncer
	}
	return nil
}
