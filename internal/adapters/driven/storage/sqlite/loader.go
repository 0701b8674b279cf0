package sqlite

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// Loader reads cities from an existing SQLite database.
// It never creates the file; a missing database is ErrDatasetUnavailable.
type Loader struct {
	path string
}

// NewLoader creates a loader for the database at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load opens the database, reads the cities table and closes it again.
func (l *Loader) Load(ctx context.Context) ([]domain.RawCity, error) {
	if _, err := os.Stat(l.path); err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("%s: %w", l.path, domain.ErrDatasetUnavailable)
		}
		return nil, fmt.Errorf("checking database: %w", err)
	}

	db, err := openDB(l.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return queryRawCities(ctx, db)
}

// Describe identifies the loader in logs and the status bar.
func (l *Loader) Describe() string {
	return "sqlite:" + l.path
}

// Path returns the database path.
func (l *Loader) Path() string {
	return l.path
}
