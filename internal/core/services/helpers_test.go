package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// mockLoader implements driven.DatasetLoader for testing.
type mockLoader struct {
	LoadFunc func(ctx context.Context) ([]domain.RawCity, error)
	calls    int
}

func (m *mockLoader) Load(ctx context.Context) ([]domain.RawCity, error) {
	m.calls++
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil, nil
}

func (m *mockLoader) Describe() string {
	return "mock"
}

// staticSnapshot implements SnapshotSource over a fixed snapshot.
type staticSnapshot struct {
	snap *domain.Snapshot
}

func (s *staticSnapshot) Snapshot() *domain.Snapshot {
	return s.snap
}

func raw(id, name string, lat, lng float64) domain.RawCity {
	return domain.RawCity{
		ID:      domain.RawValue(id),
		Name:    name,
		Country: "US",
		Lat:     domain.RawValue(fmt.Sprint(lat)),
		Lng:     domain.RawValue(fmt.Sprint(lng)),
	}
}

// fiveCities is the City One..Five dataset on the (i, i) diagonal.
func fiveCities() []domain.City {
	names := []string{"City One", "City Two", "City Three", "City Four", "City Five"}
	cities := make([]domain.City, len(names))
	for i, name := range names {
		cities[i] = domain.City{
			ID:      fmt.Sprint(i + 1),
			Name:    name,
			Country: "US",
			Lat:     float64(i),
			Lng:     float64(i),
		}
	}
	return cities
}

func mustSnapshot(cities []domain.City) *domain.Snapshot {
	snap, err := domain.NewSnapshot(cities, "test", time.Now())
	if err != nil {
		panic(err)
	}
	return snap
}

func names(cities []domain.City) []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = c.Name
	}
	return out
}
