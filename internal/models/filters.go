package models

// TrafficFilter represents the query parameters of the traffic endpoint.
// Minute is a center minute-of-day in [0, 1439], or -1 for no filter.
type TrafficFilter struct {
	Minute int `form:"minute,default=-1"`
}

// NearbyFilter represents the query parameters of the nearby-stations endpoint.
type NearbyFilter struct {
	Latitude  float64 `form:"lat"`
	Longitude float64 `form:"lon"`
	Limit     int     `form:"limit"`
}
