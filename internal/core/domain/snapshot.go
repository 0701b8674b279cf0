package domain

import (
	"fmt"
	"time"
)

// Snapshot is an immutable, ordered collection of cities loaded once per
// session or per explicit reload. A nil *Snapshot behaves as empty.
type Snapshot struct {
	cities   []City
	index    map[string]int
	source   string
	loadedAt time.Time
}

// NewSnapshot copies cities into a new snapshot. Every city must carry a
// non-empty ID that is unique within the slice.
func NewSnapshot(cities []City, source string, loadedAt time.Time) (*Snapshot, error) {
	s := &Snapshot{
		cities:   make([]City, len(cities)),
		index:    make(map[string]int, len(cities)),
		source:   source,
		loadedAt: loadedAt,
	}
	copy(s.cities, cities)

	for i, c := range s.cities {
		if c.ID == "" {
			return nil, fmt.Errorf("city %q at position %d has no id: %w", c.Name, i, ErrInvalidInput)
		}
		if _, dup := s.index[c.ID]; dup {
			return nil, fmt.Errorf("city id %q: %w", c.ID, ErrDuplicateID)
		}
		s.index[c.ID] = i
	}
	return s, nil
}

// EmptySnapshot returns a snapshot with no cities.
func EmptySnapshot(source string) *Snapshot {
	return &Snapshot{index: map[string]int{}, source: source}
}

// Len returns the number of cities.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cities)
}

// IsEmpty reports whether the snapshot holds no cities.
func (s *Snapshot) IsEmpty() bool {
	return s.Len() == 0
}

// At returns the city at position i in load order.
func (s *Snapshot) At(i int) City {
	return s.cities[i]
}

// Cities returns a copy of all cities in load order.
func (s *Snapshot) Cities() []City {
	if s == nil {
		return []City{}
	}
	out := make([]City, len(s.cities))
	copy(out, s.cities)
	return out
}

// ByID looks up a city by identifier.
func (s *Snapshot) ByID(id string) (City, bool) {
	if s == nil {
		return City{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return City{}, false
	}
	return s.cities[i], true
}

// Contains reports whether a city with the given ID is present.
func (s *Snapshot) Contains(id string) bool {
	_, ok := s.ByID(id)
	return ok
}

// Source describes where the snapshot was loaded from.
func (s *Snapshot) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// LoadedAt returns when the snapshot was built. Zero for placeholders.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}
