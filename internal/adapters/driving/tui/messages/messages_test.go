package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

func TestFocus_String(t *testing.T) {
	tests := []struct {
		focus    Focus
		expected string
	}{
		{FocusInput, "input"},
		{FocusResults, "results"},
		{Focus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.focus.String())
		})
	}
}

func TestDatasetLoaded_CarriesSnapshotOnError(t *testing.T) {
	snap := domain.EmptySnapshot("embedded")
	msg := DatasetLoaded{Snapshot: snap, Err: errors.New("boom")}

	assert.Same(t, snap, msg.Snapshot)
	assert.EqualError(t, msg.Err, "boom")
}

func TestDebounceFired_Ticket(t *testing.T) {
	msg := DebounceFired{Ticket: domain.SearchTicket(7)}
	assert.Equal(t, domain.SearchTicket(7), msg.Ticket)
}
