package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driven"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// Ensure DatasetService implements the interface.
var _ driving.DatasetService = (*DatasetService)(nil)

// cityNamespace seeds derived city IDs so the same record always maps to
// the same ID across reloads.
var cityNamespace = uuid.MustParse("6f1c2a4e-0b8d-4e55-9a57-3c0e8d1f2b64")

// maxDropWarnings caps per-record warnings for a single load.
const maxDropWarnings = 3

// DatasetService loads the dataset once (or on explicit reload) and
// publishes it as an immutable snapshot.
type DatasetService struct {
	loader  driven.DatasetLoader
	current atomic.Pointer[domain.Snapshot]

	// loadMu serialises loads so two reloads never race to install.
	loadMu sync.Mutex
	now    func() time.Time
}

// NewDatasetService creates a dataset service. The snapshot is empty until
// Load succeeds.
func NewDatasetService(loader driven.DatasetLoader) *DatasetService {
	s := &DatasetService{
		loader: loader,
		now:    time.Now,
	}
	s.current.Store(domain.EmptySnapshot(s.Source()))
	return s
}

// Snapshot returns the current snapshot.
func (s *DatasetService) Snapshot() *domain.Snapshot {
	return s.current.Load()
}

// Source describes the loader.
func (s *DatasetService) Source() string {
	if s.loader == nil {
		return "none"
	}
	return s.loader.Describe()
}

// Load runs the loader and installs the resulting snapshot.
// A failed load is logged and leaves the previous snapshot in place, which
// is empty if nothing has loaded yet.
func (s *DatasetService) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	logger.Section("Dataset Load")
	logger.Debug("Source: %s", s.Source())

	if s.loader == nil {
		logger.Error("loading dataset: no loader configured")
		return s.Snapshot(), fmt.Errorf("loading dataset: %w", domain.ErrDatasetUnavailable)
	}

	raws, err := s.loader.Load(ctx)
	if err != nil {
		logger.Error("loading dataset from %s: %v", s.Source(), err)
		return s.Snapshot(), fmt.Errorf("loading dataset from %s: %w", s.Source(), err)
	}

	snap, dropped, err := BuildSnapshot(raws, s.Source(), s.now())
	if err != nil {
		logger.Error("building snapshot: %v", err)
		return s.Snapshot(), fmt.Errorf("building snapshot: %w", err)
	}
	if dropped > 0 {
		logger.Warn("Dropped %d of %d records with unusable coordinates", dropped, len(raws))
	}
	logger.Info("Loaded %d cities from %s", snap.Len(), snap.Source())

	s.current.Store(snap)
	return snap, nil
}

// BuildSnapshot coerces raw records into cities, assigns identifiers and
// returns the snapshot plus the number of records dropped.
//
// Records keep a source ID when it is present and unique. Otherwise the ID
// is derived from the record's content and its occurrence ordinal, so
// loading the same data twice gives the same IDs.
func BuildSnapshot(raws []domain.RawCity, source string, loadedAt time.Time) (*domain.Snapshot, int, error) {
	cities := make([]domain.City, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	ordinals := make(map[string]int)
	warn := rate.Sometimes{First: maxDropWarnings}
	dropped := 0

	for i, raw := range raws {
		city, err := coerceCity(raw)
		if err != nil {
			dropped++
			warn.Do(func() {
				logger.Warn("Skipping record %d (%q): %v", i, raw.Name, err)
			})
			continue
		}

		if _, dup := seen[city.ID]; city.ID == "" || dup {
			city.ID = deriveID(city, ordinals, seen)
		}
		seen[city.ID] = struct{}{}
		cities = append(cities, city)
	}

	snap, err := domain.NewSnapshot(cities, source, loadedAt)
	if err != nil {
		return nil, dropped, err
	}
	return snap, dropped, nil
}

// coerceCity parses coordinates. IDs are trimmed but not assigned here.
func coerceCity(raw domain.RawCity) (domain.City, error) {
	lat, err := parseCoordinate(raw.Lat)
	if err != nil {
		return domain.City{}, fmt.Errorf("lat: %w", err)
	}
	lng, err := parseCoordinate(raw.Lng)
	if err != nil {
		return domain.City{}, fmt.Errorf("lng: %w", err)
	}

	city := domain.City{
		ID:      strings.TrimSpace(raw.ID.String()),
		Name:    strings.TrimSpace(raw.Name),
		Country: strings.TrimSpace(raw.Country),
		Lat:     lat,
		Lng:     lng,
	}
	if !city.HasValidCoordinates() {
		return domain.City{}, fmt.Errorf("(%v, %v) out of range: %w", lat, lng, domain.ErrInvalidCoordinates)
	}
	return city, nil
}

func parseCoordinate(v domain.RawValue) (float64, error) {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return 0, fmt.Errorf("missing: %w", domain.ErrInvalidCoordinates)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, domain.ErrInvalidCoordinates)
	}
	return f, nil
}

// deriveID hashes the record content. The ordinal distinguishes identical
// records and is bumped until the ID is unused.
func deriveID(c domain.City, ordinals map[string]int, seen map[string]struct{}) string {
	key := fmt.Sprintf("%s|%s|%s|%s",
		strings.ToLower(c.Name), strings.ToLower(c.Country),
		strconv.FormatFloat(c.Lat, 'f', -1, 64), strconv.FormatFloat(c.Lng, 'f', -1, 64))

	for {
		n := ordinals[key]
		ordinals[key] = n + 1
		id := uuid.NewSHA1(cityNamespace, []byte(key+"|"+strconv.Itoa(n))).String()
		if _, taken := seen[id]; !taken {
			return id
		}
	}
}
