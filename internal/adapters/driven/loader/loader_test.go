package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/loader/httpfetch"
	"github.com/custodia-labs/cityfinder/internal/adapters/driven/loader/jsonfile"
	"github.com/custodia-labs/cityfinder/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.DatasetSettings
		want     any
		describe string
	}{
		{"embedded", domain.DatasetSettings{Source: domain.DatasetSourceEmbedded}, &jsonfile.Loader{}, "embedded"},
		{"file", domain.DatasetSettings{Source: domain.DatasetSourceFile, Path: "/tmp/c.json"}, &jsonfile.Loader{}, "file:/tmp/c.json"},
		{"http", domain.DatasetSettings{Source: domain.DatasetSourceHTTP, URL: "http://localhost/c.json"}, &httpfetch.Loader{}, "http:http://localhost/c.json"},
		{"sqlite", domain.DatasetSettings{Source: domain.DatasetSourceSQLite, DB: "/tmp/c.db"}, &sqlite.Loader{}, "sqlite:/tmp/c.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.settings)
			require.NoError(t, err)
			assert.IsType(t, tt.want, l)
			assert.Equal(t, tt.describe, l.Describe())
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(domain.DatasetSettings{Source: "ftp"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = New(domain.DatasetSettings{Source: domain.DatasetSourceHTTP})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
