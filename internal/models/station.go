package models

// Station is one bike-share dock as it appears in the station list.
// Immutable after load; aggregation results reference it by ID only.
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StationDistance is a station annotated with its distance from a query point.
type StationDistance struct {
	Station
	DistanceMeters float64 `json:"distanceMeters"`
}
