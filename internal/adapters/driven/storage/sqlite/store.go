package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

// Store is a SQLite database holding a cities table.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at dbPath and applies
// pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("opening database: %w", domain.ErrInvalidInput)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReplaceCities swaps the table contents for cities in a single transaction.
// Row order follows the slice so loads preserve it.
func (s *Store) ReplaceCities(ctx context.Context, cities []domain.City) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM cities"); err != nil {
		return fmt.Errorf("clearing cities: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO cities (id, name, country, lat, lng) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cities {
		if _, err = stmt.ExecContext(ctx, nullString(c.ID), c.Name, c.Country, c.Lat, c.Lng); err != nil {
			return fmt.Errorf("inserting %q: %w", c.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing cities: %w", err)
	}
	return nil
}

// Count returns the number of rows in the cities table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cities").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cities: %w", err)
	}
	return n, nil
}

// RawCities returns every row in insertion order.
func (s *Store) RawCities(ctx context.Context) ([]domain.RawCity, error) {
	return queryRawCities(ctx, s.db)
}

func queryRawCities(ctx context.Context, db *sql.DB) ([]domain.RawCity, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name, country, lat, lng FROM cities ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}
	defer rows.Close()

	var out []domain.RawCity
	for rows.Next() {
		var id, name, country sql.NullString
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&id, &name, &country, &lat, &lng); err != nil {
			return nil, fmt.Errorf("scanning city: %w", err)
		}
		out = append(out, domain.RawCity{
			ID:      domain.RawValue(id.String),
			Name:    name.String,
			Country: country.String,
			Lat:     rawFloat(lat),
			Lng:     rawFloat(lng),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cities: %w", err)
	}
	return out, nil
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_cities.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// nullString converts an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// rawFloat renders a nullable REAL the way a JSON loader would see it.
// NULL becomes "", which the dataset service rejects as a coordinate.
func rawFloat(f sql.NullFloat64) domain.RawValue {
	if !f.Valid {
		return ""
	}
	return domain.RawValue(strconv.FormatFloat(f.Float64, 'f', -1, 64))
}

// isMissing reports whether err means the database file does not exist.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
