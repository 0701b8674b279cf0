package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrDatasetUnavailable", ErrDatasetUnavailable},
		{"ErrInvalidCoordinates", ErrInvalidCoordinates},
		{"ErrDuplicateID", ErrDuplicateID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	assert.False(t, errors.Is(ErrDatasetUnavailable, ErrNotFound))
	assert.False(t, errors.Is(ErrInvalidCoordinates, ErrInvalidInput))
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading cities.json: %w", ErrDatasetUnavailable)

	assert.True(t, errors.Is(wrapped, ErrDatasetUnavailable))
	assert.Contains(t, wrapped.Error(), "dataset unavailable")
}
