// Package geo holds great-circle helpers for delivery checks.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for all distance checks.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// IsConfigured reports whether a stored coordinate pair can be used for a
// distance check. Missing values and the exact (0,0) pair are unusable.
// A single zero coordinate is still a real location, so it is not skipped.
func IsConfigured(lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return false
	}
	if math.IsNaN(*lat) || math.IsNaN(*lng) {
		return false
	}
	return !(*lat == 0 && *lng == 0)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
