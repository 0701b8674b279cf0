package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// City is a single record of the dataset.
// Values are immutable once a Snapshot holds them; pass them by value.
type City struct {
	// ID is unique within a snapshot and stable across reloads of the same data.
	ID string `json:"id"`

	// Name is the city name used for substring matching.
	Name string `json:"name"`

	// Country is the country name or code as supplied by the dataset.
	Country string `json:"country"`

	// Lat is the latitude in degrees, within [-90, 90].
	Lat float64 `json:"lat"`

	// Lng is the longitude in degrees, within [-180, 180].
	Lng float64 `json:"lng"`
}

// HasValidCoordinates reports whether Lat and Lng are finite and in range.
func (c City) HasValidCoordinates() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Label returns "Name, Country", or just the name when the country is empty.
func (c City) Label() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country
}

// RawCity is a city record as produced by a dataset loader, before
// coordinates are coerced and an identifier is assigned.
type RawCity struct {
	ID      RawValue `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     RawValue `json:"lat"`
	Lng     RawValue `json:"lng"`
}

// RawValue holds a scalar exactly as the source wrote it.
// JSON strings, numbers and booleans are all accepted; null becomes "".
type RawValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("%w: expected scalar, got %s", ErrInvalidInput, data[:1])
	default:
		*v = RawValue(data)
	}
	return nil
}

// String returns the raw text.
func (v RawValue) String() string {
	return string(v)
}
