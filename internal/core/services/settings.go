package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driven"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys, dotted as the TOML store flattens them.
const (
	KeyDatasetSource      = "dataset.source"
	KeyDatasetPath        = "dataset.path"
	KeyDatasetURL         = "dataset.url"
	KeyDatasetDB          = "dataset.db"
	KeyDatasetWatch       = "dataset.watch"
	KeyDatasetRefreshSec  = "dataset.refresh_seconds"
	KeySearchDebounceMS   = "search.debounce_ms"
	KeySearchNearestCount = "search.nearest_count"
	KeyLogFile            = "log.file"
	KeyLogVerbose         = "log.verbose"
)

// SettingsService maps the flat config store onto domain.Settings.
type SettingsService struct {
	config driven.ConfigStore
}

// NewSettingsService creates a settings service over a config store.
func NewSettingsService(config driven.ConfigStore) *SettingsService {
	return &SettingsService{config: config}
}

// Get returns the settings with defaults for every missing key.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.config == nil {
		return settings, nil
	}

	if v := s.config.GetString(KeyDatasetSource); v != "" {
		settings.Dataset.Source = domain.DatasetSource(v)
	}
	settings.Dataset.Path = s.config.GetString(KeyDatasetPath)
	settings.Dataset.URL = s.config.GetString(KeyDatasetURL)
	settings.Dataset.DB = s.config.GetString(KeyDatasetDB)
	settings.Dataset.Watch = s.config.GetBool(KeyDatasetWatch)
	settings.Dataset.Refresh = time.Duration(s.config.GetInt(KeyDatasetRefreshSec)) * time.Second

	if _, ok := s.config.Get(KeySearchDebounceMS); ok {
		settings.Search.Debounce = time.Duration(s.config.GetInt(KeySearchDebounceMS)) * time.Millisecond
	}
	if _, ok := s.config.Get(KeySearchNearestCount); ok {
		settings.Search.NearestCount = s.config.GetInt(KeySearchNearestCount)
	}

	settings.Log.File = s.config.GetString(KeyLogFile)
	settings.Log.Verbose = s.config.GetBool(KeyLogVerbose)

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings in %s: %w", s.config.Path(), err)
	}
	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if s.config == nil {
		return fmt.Errorf("saving settings: %w", domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyDatasetSource, settings.Dataset.Source.String()},
		{KeyDatasetPath, settings.Dataset.Path},
		{KeyDatasetURL, settings.Dataset.URL},
		{KeyDatasetDB, settings.Dataset.DB},
		{KeyDatasetWatch, settings.Dataset.Watch},
		{KeyDatasetRefreshSec, int64(settings.Dataset.Refresh / time.Second)},
		{KeySearchDebounceMS, settings.Search.Debounce.Milliseconds()},
		{KeySearchNearestCount, settings.Search.NearestCount},
		{KeyLogFile, settings.Log.File},
		{KeyLogVerbose, settings.Log.Verbose},
	}
	for _, v := range values {
		if err := s.config.Set(v.key, v.value); err != nil {
			return fmt.Errorf("saving %s: %w", v.key, err)
		}
	}
	return nil
}
