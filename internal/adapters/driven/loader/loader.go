// Package loader selects the dataset loader for the configured source.
package loader

import (
	"fmt"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/loader/httpfetch"
	"github.com/custodia-labs/cityfinder/internal/adapters/driven/loader/jsonfile"
	"github.com/custodia-labs/cityfinder/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driven"
)

// New returns the loader for settings.Source.
func New(settings domain.DatasetSettings) (driven.DatasetLoader, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Source {
	case domain.DatasetSourceEmbedded:
		return jsonfile.New(""), nil
	case domain.DatasetSourceFile:
		return jsonfile.New(settings.Path), nil
	case domain.DatasetSourceHTTP:
		l, err := httpfetch.New(httpfetch.Config{URL: settings.URL})
		if err != nil {
			return nil, err
		}
		return l, nil
	case domain.DatasetSourceSQLite:
		return sqlite.NewLoader(settings.DB), nil
	default:
		return nil, fmt.Errorf("dataset source %q: %w", settings.Source, domain.ErrUnsupportedType)
	}
}
