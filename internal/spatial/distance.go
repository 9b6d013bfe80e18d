package spatial

import "github.com/golang/geo/s2"

// EarthRadiusMeters is Earth's mean radius in meters.
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Midpoint calculates the midpoint between two points.
func Midpoint(lat1, lon1, lat2, lon2 float64) (float64, float64) {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	mid := s2.Interpolate(0.5, s2.PointFromLatLng(p1), s2.PointFromLatLng(p2))
	midLatLng := s2.LatLngFromPoint(mid)

	return midLatLng.Lat.Degrees(), midLatLng.Lng.Degrees()
}
