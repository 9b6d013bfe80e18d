package service

import (
	"sync/atomic"

	"github.com/umahmood/haversine"

	"github.com/velomaps/bikeflow-backend-go/internal/models"
	"github.com/velomaps/bikeflow-backend-go/internal/spatial"
	"github.com/velomaps/bikeflow-backend-go/internal/stats"
	"github.com/velomaps/bikeflow-backend-go/internal/traffic"
)

// TrafficService serves aggregation queries against the current engine
// snapshot. A reload swaps in a fresh engine atomically; queries already in
// flight keep the snapshot they started with, and the latest snapshot wins
// for everything after.
type TrafficService struct {
	engine atomic.Pointer[traffic.Engine]
}

// NewTrafficService creates a traffic service over an initial engine.
func NewTrafficService(e *traffic.Engine) *TrafficService {
	s := &TrafficService{}
	s.engine.Store(e)
	return s
}

// Engine returns the current engine snapshot.
func (s *TrafficService) Engine() *traffic.Engine {
	return s.engine.Load()
}

// Swap replaces the engine snapshot after a reload.
func (s *TrafficService) Swap(e *traffic.Engine) {
	s.engine.Store(e)
}

// View returns the per-station traffic view for a center minute
// (traffic.UnfilteredMinute for the all-time view).
func (s *TrafficService) View(minute int) (models.TrafficView, error) {
	return s.Engine().View(minute)
}

// MinuteHistogram returns departure/arrival totals per minute slot.
func (s *TrafficService) MinuteHistogram() []models.MinuteBucket {
	return s.Engine().MinuteHistogram()
}

// Summary describes the loaded dataset: counts, traffic distribution, the
// busiest station, the station bounding box, and the average straight-line
// trip distance.
func (s *TrafficService) Summary() (models.TrafficSummary, error) {
	e := s.Engine()
	view, err := e.View(traffic.UnfilteredMinute)
	if err != nil {
		return models.TrafficSummary{}, err
	}

	totals := make([]int, 0, len(view.Stations))
	var busiest *models.StationTraffic
	for i := range view.Stations {
		st := &view.Stations[i]
		totals = append(totals, st.TotalTraffic)
		if busiest == nil || st.TotalTraffic > busiest.TotalTraffic {
			busiest = st
		}
	}

	summary := models.TrafficSummary{
		StationCount:      e.Registry().Len(),
		TripCount:         e.TripCount(),
		MaxTotal:          stats.Max(totals),
		MeanTotal:         stats.Mean(totals),
		P90Total:          stats.Quantile(totals, 0.9),
		Bounds:            stationBounds(e.Registry().All()),
		AvgTripDistanceKM: avgTripDistanceKM(e),
	}
	if busiest != nil && busiest.TotalTraffic > 0 {
		b := *busiest
		summary.BusiestStation = &b
	}
	return summary, nil
}

func stationBounds(stations []models.Station) *models.Bounds {
	if len(stations) == 0 {
		return nil
	}
	b := &models.Bounds{
		MinLat: stations[0].Latitude, MaxLat: stations[0].Latitude,
		MinLon: stations[0].Longitude, MaxLon: stations[0].Longitude,
	}
	for _, s := range stations[1:] {
		if s.Latitude < b.MinLat {
			b.MinLat = s.Latitude
		}
		if s.Latitude > b.MaxLat {
			b.MaxLat = s.Latitude
		}
		if s.Longitude < b.MinLon {
			b.MinLon = s.Longitude
		}
		if s.Longitude > b.MaxLon {
			b.MaxLon = s.Longitude
		}
	}
	b.CenterLat, b.CenterLon = spatial.Midpoint(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	return b
}

// avgTripDistanceKM averages the straight-line distance between the start and
// end docks of each trip. Trips touching unregistered stations are left out.
func avgTripDistanceKM(e *traffic.Engine) float64 {
	registry := e.Registry()
	var sum float64
	n := 0
	for _, t := range e.Trips() {
		start, okStart := registry.Get(t.StartStationID)
		end, okEnd := registry.Get(t.EndStationID)
		if !okStart || !okEnd {
			continue
		}
		p1 := haversine.Coord{Lat: start.Latitude, Lon: start.Longitude}
		p2 := haversine.Coord{Lat: end.Latitude, Lon: end.Longitude}
		_, km := haversine.Distance(p1, p2)
		sum += km
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
