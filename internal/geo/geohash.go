package geo

import (
	"math"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// GeohashPrecision is the number of characters in a city cell (~150m).
const GeohashPrecision = 7

// Geohash returns the geohash cell of a point, or "" when the point is not
// a valid coordinate.
func Geohash(lat, lng float64) string {
	if !Valid(lat, lng) {
		return ""
	}
	return geohash.EncodeWithPrecision(lat, lng, GeohashPrecision)
}

// Valid reports whether lat/lng are finite and within [-90, 90] / [-180, 180].
func Valid(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
