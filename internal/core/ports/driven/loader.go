package driven

import (
	"context"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// DatasetLoader produces the raw city records of the dataset.
// Implementations may read bundled data synchronously or fetch remotely;
// either way Load eventually returns an ordered sequence or fails.
type DatasetLoader interface {
	// Load returns the raw records in source order.
	// Individual malformed records should be skipped, not fail the load.
	Load(ctx context.Context) ([]domain.RawCity, error)

	// Describe returns a short human-readable description of the source,
	// e.g. "file:/data/cities.json".
	Describe() string
}
