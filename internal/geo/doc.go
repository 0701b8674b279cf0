// Package geo provides the spherical geometry used to rank cities.
//
// Distances are great-circle distances in kilometres computed with the
// haversine formula on a sphere of radius EarthRadiusKm.
package geo
