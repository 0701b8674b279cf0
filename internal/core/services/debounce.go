package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// Ensure Debouncer implements the interface.
var _ driving.SearchDebouncer = (*Debouncer)(nil)

// Searcher is the part of driving.SearchService the debouncer needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.City, error)
}

// Debouncer coalesces query edits into one search per quiescence window.
//
// It holds no timers: the caller schedules Fire after Delay (the TUI uses
// tea.Tick). Superseded tickets become no-ops, which is what cancels them.
type Debouncer struct {
	mu      sync.Mutex
	search  Searcher
	delay   time.Duration
	latest  domain.SearchTicket
	query   string
	pending bool
	stopped bool
}

// NewDebouncer creates a debouncer. A negative delay is treated as zero.
func NewDebouncer(search Searcher, delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{
		search: search,
		delay:  delay,
	}
}

// Delay returns the quiescence window.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule records query as the latest edit and returns its ticket.
// After Stop it returns the zero ticket, which never fires.
func (d *Debouncer) Schedule(query string) domain.SearchTicket {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return 0
	}
	d.latest++
	d.query = query
	d.pending = true
	return d.latest
}

// Fire runs the search for ticket if it is still the latest.
// The query is the one recorded by the latest Schedule, and the searcher
// reads the snapshot that is current now, not when the ticket was issued.
func (d *Debouncer) Fire(ctx context.Context, ticket domain.SearchTicket) (domain.SearchOutcome, bool) {
	d.mu.Lock()
	if d.stopped || ticket == 0 || ticket != d.latest || !d.pending {
		d.mu.Unlock()
		return domain.SearchOutcome{}, false
	}
	query := d.query
	d.mu.Unlock()

	results, err := d.search.Search(ctx, query)

	d.mu.Lock()
	defer d.mu.Unlock()

	// A newer edit or Stop while searching wins.
	if d.stopped || ticket != d.latest {
		return domain.SearchOutcome{}, false
	}
	d.pending = false

	if err != nil {
		logger.Warn("Debounced search %q failed: %v", query, err)
	}
	return domain.SearchOutcome{
		Ticket:  ticket,
		Query:   query,
		Results: results,
		Err:     err,
	}, true
}

// Loading reports whether the latest ticket has not fired yet.
func (d *Debouncer) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop discards pending work. It is safe to call more than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	d.latest++
}
