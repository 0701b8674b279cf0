package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
	"github.com/custodia-labs/cityfinder/internal/geo"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SnapshotSource supplies the snapshot current at call time.
type SnapshotSource interface {
	Snapshot() *domain.Snapshot
}

// SearchService ranks cities of whatever snapshot is current when called.
type SearchService struct {
	dataset      SnapshotSource
	nearestCount int
}

// NewSearchService creates a search service. nearestCount <= 0 falls back
// to domain.DefaultNearestCount and is capped at domain.MaxNearest.
func NewSearchService(dataset SnapshotSource, nearestCount int) *SearchService {
	if nearestCount <= 0 {
		nearestCount = domain.DefaultNearestCount
	}
	nearestCount = min(nearestCount, domain.MaxNearest)
	return &SearchService{
		dataset:      dataset,
		nearestCount: nearestCount,
	}
}

// Search ranks the current snapshot for query.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := s.dataset.Snapshot()
	logger.Debug("Search %q over %d cities", query, snap.Len())

	results := RankSearch(snap, query)
	logger.Debug("Search %q returned %d cities", query, len(results))
	return results, nil
}

// Anchor returns the first city whose name contains query.
func (s *SearchService) Anchor(_ context.Context, query string) (domain.City, bool) {
	return FindAnchor(s.dataset.Snapshot(), query)
}

// Nearest returns the closest other cities to the city with the given ID.
func (s *SearchService) Nearest(ctx context.Context, id string) ([]domain.City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := s.dataset.Snapshot()
	origin, ok := snap.ByID(id)
	if !ok {
		return nil, fmt.Errorf("city %q: %w", id, domain.ErrNotFound)
	}
	return RankNearest(snap, origin, s.nearestCount), nil
}

// RankSearch implements the search ordering.
//
// An empty or whitespace-only query returns every city in load order.
// Otherwise the anchor is the first city, in load order, whose name
// contains the trimmed query case-insensitively. The result is every other
// city of the snapshot ordered by ascending distance to the anchor; ties
// keep load order. No anchor means no results.
func RankSearch(snap *domain.Snapshot, query string) []domain.City {
	if strings.TrimSpace(query) == "" {
		return snap.Cities()
	}

	anchor, ok := FindAnchor(snap, query)
	if !ok {
		return []domain.City{}
	}
	return rankByDistance(snap, anchor, -1)
}

// FindAnchor returns the first city whose name contains query after
// trimming and lower-casing both sides.
func FindAnchor(snap *domain.Snapshot, query string) (domain.City, bool) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return domain.City{}, false
	}
	for i := 0; i < snap.Len(); i++ {
		c := snap.At(i)
		if strings.Contains(strings.ToLower(strings.TrimSpace(c.Name)), needle) {
			return c, true
		}
	}
	return domain.City{}, false
}

// RankNearest returns up to n cities closest to origin, excluding origin by
// ID. Ties keep load order.
func RankNearest(snap *domain.Snapshot, origin domain.City, n int) []domain.City {
	if n <= 0 {
		return []domain.City{}
	}
	return rankByDistance(snap, origin, n)
}

type rankedCity struct {
	city domain.City
	dist float64
}

// rankByDistance sorts every city except origin by distance to origin and
// keeps the first limit (all when limit < 0). NaN distances sort last.
func rankByDistance(snap *domain.Snapshot, origin domain.City, limit int) []domain.City {
	ranked := make([]rankedCity, 0, snap.Len())
	for i := 0; i < snap.Len(); i++ {
		c := snap.At(i)
		if c.ID == origin.ID {
			continue
		}
		ranked = append(ranked, rankedCity{
			city: c,
			dist: geo.Distance(origin.Lat, origin.Lng, c.Lat, c.Lng),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return distanceLess(ranked[i].dist, ranked[j].dist)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]domain.City, len(ranked))
	for i, r := range ranked {
		out[i] = r.city
	}
	return out
}

// distanceLess orders numbers ascending with NaN after everything else.
func distanceLess(a, b float64) bool {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN:
		return false
	case bNaN:
		return true
	default:
		return a < b
	}
}
