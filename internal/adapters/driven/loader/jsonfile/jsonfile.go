// Package jsonfile loads the city dataset from a JSON array, either a file on
// disk or the dataset embedded in the binary.
package jsonfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driven"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

//go:embed cities.json
var embedded []byte

// Embedded returns a copy of the built-in dataset.
func Embedded() []byte {
	return bytes.Clone(embedded)
}

// Loader reads a JSON array of city objects.
type Loader struct {
	path string
}

// New creates a loader for path. An empty path selects the embedded dataset.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and decodes the dataset.
func (l *Loader) Load(ctx context.Context) ([]domain.RawCity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.path == "" {
		return Decode(embedded)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", l.path, domain.ErrDatasetUnavailable)
		}
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	if data, err = Decompress(l.path, data, 0); err != nil {
		return nil, err
	}
	return Decode(data)
}

// Describe identifies the loader in logs and the status bar.
func (l *Loader) Describe() string {
	if l.path == "" {
		return "embedded"
	}
	return "file:" + l.path
}

// Path returns the file path, empty for the embedded dataset.
func (l *Loader) Path() string {
	return l.path
}

// Decode parses a JSON array of city objects. Elements that are not objects
// of the expected shape are skipped; the top level must be an array.
func Decode(data []byte) ([]domain.RawCity, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w: %v", domain.ErrInvalidInput, err)
	}

	warn := rate.Sometimes{First: 3}
	cities := make([]domain.RawCity, 0, len(elements))
	skipped := 0
	for i, el := range elements {
		var c domain.RawCity
		if err := json.Unmarshal(el, &c); err != nil {
			skipped++
			warn.Do(func() { logger.Warn("skipping dataset element %d: %v", i, err) })
			continue
		}
		cities = append(cities, c)
	}

	if skipped > 0 {
		logger.Warn("skipped %d of %d dataset elements", skipped, len(elements))
	}
	return cities, nil
}
