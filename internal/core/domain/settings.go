package domain

import (
	"fmt"
	"time"
)

// DatasetSource identifies which loader supplies the city dataset.
type DatasetSource string

// Available dataset sources.
const (
	// DatasetSourceEmbedded uses the dataset compiled into the binary.
	DatasetSourceEmbedded DatasetSource = "embedded"

	// DatasetSourceFile reads a JSON array from a local file.
	DatasetSourceFile DatasetSource = "file"

	// DatasetSourceHTTP fetches a JSON array from a URL.
	DatasetSourceHTTP DatasetSource = "http"

	// DatasetSourceSQLite reads the cities table of a SQLite database.
	DatasetSourceSQLite DatasetSource = "sqlite"
)

// IsValid returns true if the dataset source is recognised.
func (s DatasetSource) IsValid() bool {
	switch s {
	case DatasetSourceEmbedded, DatasetSourceFile, DatasetSourceHTTP, DatasetSourceSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s DatasetSource) String() string {
	return string(s)
}

// Default setting values.
const (
	DefaultDebounce     = 500 * time.Millisecond
	DefaultNearestCount = MaxNearest
)

// Settings is the typed application configuration.
type Settings struct {
	Dataset DatasetSettings
	Search  SearchSettings
	Log     LogSettings
}

// DatasetSettings configures where cities are loaded from.
type DatasetSettings struct {
	// Source selects the loader.
	Source DatasetSource

	// Path is the JSON file for DatasetSourceFile.
	Path string

	// URL is fetched for DatasetSourceHTTP.
	URL string

	// DB is the SQLite database for DatasetSourceSQLite.
	DB string

	// Watch reloads the dataset when the file at Path or DB changes.
	Watch bool

	// Refresh reloads the dataset on this interval while the finder runs.
	// Zero disables it.
	Refresh time.Duration
}

// SearchSettings configures the search pipeline.
type SearchSettings struct {
	// Debounce is the quiescence window before a typed query is searched.
	Debounce time.Duration

	// NearestCount is how many neighbours to show for a selection.
	NearestCount int
}

// LogSettings configures verbose logging.
type LogSettings struct {
	// File receives log output instead of stderr when set.
	File string

	// Verbose enables debug output.
	Verbose bool
}

// DefaultSettings returns settings that work without a config file.
func DefaultSettings() Settings {
	return Settings{
		Dataset: DatasetSettings{Source: DatasetSourceEmbedded},
		Search: SearchSettings{
			Debounce:     DefaultDebounce,
			NearestCount: DefaultNearestCount,
		},
	}
}

// Validate checks that the settings describe a usable configuration.
func (s Settings) Validate() error {
	if err := s.Dataset.Validate(); err != nil {
		return err
	}
	return s.Search.Validate()
}

// Validate checks that the selected source has what it needs.
func (d DatasetSettings) Validate() error {
	if !d.Source.IsValid() {
		return fmt.Errorf("dataset source %q: %w", d.Source, ErrUnsupportedType)
	}
	if d.Refresh < 0 {
		return fmt.Errorf("dataset refresh %s is negative: %w", d.Refresh, ErrInvalidInput)
	}
	switch d.Source {
	case DatasetSourceFile:
		if d.Path == "" {
			return fmt.Errorf("dataset source file requires a path: %w", ErrInvalidInput)
		}
	case DatasetSourceHTTP:
		if d.URL == "" {
			return fmt.Errorf("dataset source http requires a url: %w", ErrInvalidInput)
		}
	case DatasetSourceSQLite:
		if d.DB == "" {
			return fmt.Errorf("dataset source sqlite requires a database path: %w", ErrInvalidInput)
		}
	case DatasetSourceEmbedded:
	}
	return nil
}

// WatchPath returns the local file to watch for changes, or "" when the
// source is not a local file.
func (d DatasetSettings) WatchPath() string {
	switch d.Source {
	case DatasetSourceFile:
		return d.Path
	case DatasetSourceSQLite:
		return d.DB
	default:
		return ""
	}
}

// Validate checks the search settings.
func (s SearchSettings) Validate() error {
	if s.Debounce < 0 {
		return fmt.Errorf("debounce %s is negative: %w", s.Debounce, ErrInvalidInput)
	}
	if s.NearestCount < 1 || s.NearestCount > MaxNearest {
		return fmt.Errorf("nearest count %d must be between 1 and %d: %w", s.NearestCount, MaxNearest, ErrInvalidInput)
	}
	return nil
}
