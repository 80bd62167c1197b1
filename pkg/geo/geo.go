package geo

import "math"

const (
	// EarthRadiusMeters is the mean Earth radius used for haversine distance.
	EarthRadiusMeters = 6371000.0

	// MetersPerMile converts statute miles to meters.
	MetersPerMile = 1609.34
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the point is the unset zero value.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// HaversineMeters returns the great-circle distance between two points in meters.
func HaversineMeters(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// Miles converts meters to statute miles.
func Miles(meters float64) float64 {
	return meters / MetersPerMile
}
