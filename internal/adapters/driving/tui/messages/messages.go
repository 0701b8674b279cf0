// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// DatasetLoaded carries the outcome of a dataset load or reload.
// Snapshot is the snapshot installed afterwards, which is the previous one
// when Err is set.
type DatasetLoaded struct {
	Snapshot *domain.Snapshot
	Err      error
}

// ReloadRequested asks the view to reload the dataset.
// Sent by the reload key and by the dataset file watcher.
type ReloadRequested struct{}

// DebounceFired is delivered when a scheduled search's quiet period ends.
type DebounceFired struct {
	Ticket domain.SearchTicket
}

// CitySelected is sent when a result is chosen.
type CitySelected struct {
	City domain.City
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Focus identifies which pane receives keystrokes.
type Focus int

const (
	// FocusInput sends keys to the query input.
	FocusInput Focus = iota
	// FocusResults sends keys to the results list.
	FocusResults
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusResults:
		return "results"
	default:
		return "unknown"
	}
}
