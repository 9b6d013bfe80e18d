package models

// StationTraffic is a station joined with its arrival and departure counts
// for the active time filter. Derived on every query, never persisted.
// TotalTraffic is always Arrivals + Departures.
type StationTraffic struct {
	Station
	Arrivals     int `json:"arrivals"`
	Departures   int `json:"departures"`
	TotalTraffic int `json:"totalTraffic"`
}

// TrafficView is the full per-station traffic picture for one filter state.
// MaxTotal is the largest TotalTraffic across all stations; the rendering
// layer needs it for its radius scale.
type TrafficView struct {
	Minute   int              `json:"minute"` // -1 when unfiltered
	Stations []StationTraffic `json:"stations"`
	MaxTotal int              `json:"maxTotal"`
}

// MinuteBucket is one row of the per-minute histogram.
type MinuteBucket struct {
	Minute     int `json:"minute"`
	Departures int `json:"departures"`
	Arrivals   int `json:"arrivals"`
}

// Bounds is the geographic bounding box of the loaded stations.
type Bounds struct {
	MinLat    float64 `json:"minLat"`
	MinLon    float64 `json:"minLon"`
	MaxLat    float64 `json:"maxLat"`
	MaxLon    float64 `json:"maxLon"`
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
}

// TrafficSummary describes the loaded dataset as a whole.
type TrafficSummary struct {
	StationCount      int             `json:"stationCount"`
	TripCount         int             `json:"tripCount"`
	MaxTotal          int             `json:"maxTotal"`
	MeanTotal         float64         `json:"meanTotal"`
	P90Total          float64         `json:"p90Total"`
	BusiestStation    *StationTraffic `json:"busiestStation,omitempty"`
	Bounds            *Bounds         `json:"bounds,omitempty"`
	AvgTripDistanceKM float64         `json:"avgTripDistanceKm"`
}
