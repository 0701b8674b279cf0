package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// recordingSearcher records every query it is asked to run.
type recordingSearcher struct {
	mu      sync.Mutex
	queries []string
	err     error
	hook    func()
}

func (r *recordingSearcher) Search(_ context.Context, query string) ([]domain.City, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	hook := r.hook
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	if r.err != nil {
		return nil, r.err
	}
	return []domain.City{{ID: "1", Name: query}}, nil
}

// timedFire is a pending Fire call on a simulated clock.
type timedFire struct {
	at     time.Duration
	ticket domain.SearchTicket
}

func TestNewDebouncer_NegativeDelay(t *testing.T) {
	d := NewDebouncer(&recordingSearcher{}, -time.Second)
	assert.Equal(t, time.Duration(0), d.Delay())
}

func TestDebouncer_CoalescesRapidEdits(t *testing.T) {
	searcher := &recordingSearcher{}
	d := NewDebouncer(searcher, 500*time.Millisecond)

	edits := []struct {
		at    time.Duration
		query string
	}{
		{0, "A"},
		{100 * time.Millisecond, "AB"},
		{200 * time.Millisecond, "ABC"},
	}

	var fires []timedFire
	for _, e := range edits {
		ticket := d.Schedule(e.query)
		fires = append(fires, timedFire{at: e.at + d.Delay(), ticket: ticket})
		assert.True(t, d.Loading())
	}
	sort.Slice(fires, func(i, j int) bool { return fires[i].at < fires[j].at })

	var ran []time.Duration
	var outcomes []domain.SearchOutcome
	for _, f := range fires {
		if outcome, ok := d.Fire(context.Background(), f.ticket); ok {
			ran = append(ran, f.at)
			outcomes = append(outcomes, outcome)
		}
	}

	require.Len(t, outcomes, 1)
	assert.Equal(t, []time.Duration{700 * time.Millisecond}, ran)
	assert.Equal(t, "ABC", outcomes[0].Query)
	assert.Equal(t, []string{"ABC"}, searcher.queries)
	assert.False(t, d.Loading())
}

func TestDebouncer_SeparatedEditsEachRun(t *testing.T) {
	searcher := &recordingSearcher{}
	d := NewDebouncer(searcher, 500*time.Millisecond)

	first := d.Schedule("Lima")
	_, ok := d.Fire(context.Background(), first)
	require.True(t, ok)

	second := d.Schedule("Quito")
	_, ok = d.Fire(context.Background(), second)
	require.True(t, ok)

	assert.Equal(t, []string{"Lima", "Quito"}, searcher.queries)
}

func TestDebouncer_TicketFiresOnce(t *testing.T) {
	searcher := &recordingSearcher{}
	d := NewDebouncer(searcher, 0)

	ticket := d.Schedule("Lima")
	_, ok := d.Fire(context.Background(), ticket)
	assert.True(t, ok)
	_, ok = d.Fire(context.Background(), ticket)
	assert.False(t, ok)

	assert.Len(t, searcher.queries, 1)
}

func TestDebouncer_EmptyQueryResetsLoading(t *testing.T) {
	d := NewDebouncer(&recordingSearcher{}, 500*time.Millisecond)

	ticket := d.Schedule("")
	assert.True(t, d.Loading())

	outcome, ok := d.Fire(context.Background(), ticket)

	assert.True(t, ok)
	assert.Equal(t, "", outcome.Query)
	assert.False(t, d.Loading())
}

func TestDebouncer_StopDiscardsPending(t *testing.T) {
	searcher := &recordingSearcher{}
	d := NewDebouncer(searcher, 500*time.Millisecond)

	ticket := d.Schedule("Lima")
	d.Stop()

	_, ok := d.Fire(context.Background(), ticket)
	assert.False(t, ok)
	assert.False(t, d.Loading())
	assert.Empty(t, searcher.queries)

	// Scheduling after teardown never fires.
	late := d.Schedule("Quito")
	assert.Equal(t, domain.SearchTicket(0), late)
	_, ok = d.Fire(context.Background(), late)
	assert.False(t, ok)

	d.Stop()
}

func TestDebouncer_ZeroTicketNeverFires(t *testing.T) {
	d := NewDebouncer(&recordingSearcher{}, 0)
	_, ok := d.Fire(context.Background(), 0)
	assert.False(t, ok)
}

func TestDebouncer_NewerEditDuringSearchWins(t *testing.T) {
	searcher := &recordingSearcher{}
	d := NewDebouncer(searcher, 0)

	first := d.Schedule("Li")
	var second domain.SearchTicket
	searcher.hook = func() {
		searcher.hook = nil
		second = d.Schedule("Lima")
	}

	_, ok := d.Fire(context.Background(), first)
	assert.False(t, ok, "results of a superseded edit must not be applied")
	assert.True(t, d.Loading())

	outcome, ok := d.Fire(context.Background(), second)
	assert.True(t, ok)
	assert.Equal(t, "Lima", outcome.Query)
}

func TestDebouncer_SearchErrorIsReported(t *testing.T) {
	searcher := &recordingSearcher{err: errors.New("boom")}
	d := NewDebouncer(searcher, 0)

	outcome, ok := d.Fire(context.Background(), d.Schedule("Lima"))

	assert.True(t, ok)
	assert.EqualError(t, outcome.Err, "boom")
	assert.False(t, d.Loading())
}

func TestDebouncer_ReadsSnapshotAtFireTime(t *testing.T) {
	source := &staticSnapshot{snap: domain.EmptySnapshot("placeholder")}
	d := NewDebouncer(NewSearchService(source, 4), 500*time.Millisecond)

	// Scheduled before the dataset finished loading.
	ticket := d.Schedule("City One")
	source.snap = mustSnapshot(fiveCities())

	outcome, ok := d.Fire(context.Background(), ticket)

	require.True(t, ok)
	assert.Equal(t, []string{"City Two", "City Three", "City Four", "City Five"}, names(outcome.Results))
}
