package driving

import (
	"context"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// DatasetService owns the dataset snapshot.
type DatasetService interface {
	// Snapshot returns the current snapshot. Never nil; empty until the
	// first successful load.
	Snapshot() *domain.Snapshot

	// Load loads the dataset and installs the new snapshot.
	// On failure the previous snapshot (initially empty) stays installed.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Source describes where the dataset comes from.
	Source() string
}
