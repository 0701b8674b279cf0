package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// Refresher reloads the dataset on a fixed interval.
// It suits remote sources, which have no file to watch.
type Refresher struct {
	dataset  driving.DatasetService
	interval time.Duration
	onReload func(*domain.Snapshot, error)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRefresher creates a refresher. onReload receives the outcome of every
// reload; it may be nil.
func NewRefresher(
	dataset driving.DatasetService,
	interval time.Duration,
	onReload func(*domain.Snapshot, error),
) *Refresher {
	return &Refresher{
		dataset:  dataset,
		interval: interval,
		onReload: onReload,
	}
}

// Interval returns the reload interval.
func (r *Refresher) Interval() time.Duration {
	return r.interval
}

// Start reloads every interval until Stop is called or ctx is cancelled.
// It blocks. A non-positive interval returns immediately.
func (r *Refresher) Start(ctx context.Context) error {
	if r.interval <= 0 || r.dataset == nil {
		return nil
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil // Already running
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.wg.Add(1)
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		r.wg.Done()
	}()

	logger.Debug("Refreshing %s every %s", r.dataset.Source(), r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			r.reload(ctx)
		}
	}
}

// Stop ends the loop and waits for an in-flight reload to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	close(r.stopCh)
	r.running = false
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Refresher) reload(ctx context.Context) {
	snap, err := r.dataset.Load(ctx)
	if err != nil {
		logger.Warn("refresh of %s failed: %v", r.dataset.Source(), err)
	}
	if r.onReload != nil {
		r.onReload(snap, err)
	}
}
