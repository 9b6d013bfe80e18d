package service

import (
	"sort"

	"github.com/velomaps/bikeflow-backend-go/internal/models"
	"github.com/velomaps/bikeflow-backend-go/internal/spatial"
	"github.com/velomaps/bikeflow-backend-go/internal/traffic"
)

// StationService answers station-centric queries against the current engine
// snapshot.
type StationService struct {
	traffic *TrafficService
}

// NewStationService creates a new station service
func NewStationService(traffic *TrafficService) *StationService {
	return &StationService{traffic: traffic}
}

// List returns every registered station.
func (s *StationService) List() []models.Station {
	return s.traffic.Engine().Registry().All()
}

// Get returns one station together with its all-time traffic.
func (s *StationService) Get(id string) (models.StationTraffic, bool) {
	e := s.traffic.Engine()
	station, ok := e.Registry().Get(id)
	if !ok {
		return models.StationTraffic{}, false
	}
	w, err := traffic.ResolveWindow(traffic.UnfilteredMinute, e.HalfWidth())
	if err != nil {
		return models.StationTraffic{}, false
	}
	st := models.StationTraffic{
		Station:    station,
		Arrivals:   e.Arrivals(w).Get(id),
		Departures: e.Departures(w).Get(id),
	}
	st.TotalTraffic = st.Arrivals + st.Departures
	return st, true
}

// Nearby returns up to limit stations ranked by distance from the query
// point.
func (s *StationService) Nearby(lat, lon float64, limit int) []models.StationDistance {
	stations := s.traffic.Engine().Registry().All()
	out := make([]models.StationDistance, 0, len(stations))
	for _, st := range stations {
		out = append(out, models.StationDistance{
			Station:        st,
			DistanceMeters: spatial.HaversineDistance(lat, lon, st.Latitude, st.Longitude),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
