package driving

import (
	"context"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// SearchService ranks cities of the current dataset snapshot.
type SearchService interface {
	// Search returns the ordered result list for a query.
	// An empty query returns every city in load order. Otherwise the first
	// city whose name contains the query is the anchor and the result is
	// every other city ordered by distance to it. No match yields an empty
	// slice, not an error.
	Search(ctx context.Context, query string) ([]domain.City, error)

	// Anchor returns the first city whose name contains the query.
	Anchor(ctx context.Context, query string) (domain.City, bool)

	// Nearest returns the closest other cities to the city with the given ID.
	Nearest(ctx context.Context, id string) ([]domain.City, error)
}
