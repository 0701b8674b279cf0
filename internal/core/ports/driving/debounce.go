package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// SearchDebouncer coalesces rapid query edits into a single search.
//
// The caller owns the clock: after Schedule it arranges for Fire to be
// called with the returned ticket once Delay has elapsed. Only the most
// recent ticket runs a search.
type SearchDebouncer interface {
	// Delay returns the quiescence window.
	Delay() time.Duration

	// Schedule records query as the latest edit and supersedes every
	// pending ticket.
	Schedule(query string) domain.SearchTicket

	// Fire runs the search for ticket if it is still the latest one.
	// The query and dataset are read at fire time.
	Fire(ctx context.Context, ticket domain.SearchTicket) (domain.SearchOutcome, bool)

	// Loading reports whether a scheduled search has not fired yet.
	Loading() bool

	// Stop discards pending work; no ticket fires afterwards.
	Stop()
}
