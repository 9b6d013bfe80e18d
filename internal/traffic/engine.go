package traffic

import "github.com/velomaps/bikeflow-backend-go/internal/models"

// Engine owns one ingested snapshot: the trip arena, both bucket sets, the
// station registry, and the cached unfiltered count maps. It is constructed
// once per ingestion and is read-only afterwards, so concurrent queries need
// no locking. A fresh data load gets a fresh engine; instances are never
// reused across loads.
type Engine struct {
	registry   *Registry
	trips      []models.Trip
	departures *BucketSet
	arrivals   *BucketSet
	halfWidth  int

	// The unfiltered maps never change after ingestion, so they are
	// computed once here instead of per query.
	allDepartures CountMap
	allArrivals   CountMap
}

// NewEngine buckets the trips and builds an engine over them. halfWidth is
// the window half-width in minutes used for filtered queries.
func NewEngine(registry *Registry, trips []models.Trip, halfWidth int) *Engine {
	departures, arrivals := BucketTrips(trips)
	e := &Engine{
		registry:   registry,
		trips:      trips,
		departures: departures,
		arrivals:   arrivals,
		halfWidth:  halfWidth,
	}
	all := Window{all: true}
	e.allDepartures = aggregate(trips, departures, all, startStation)
	e.allArrivals = aggregate(trips, arrivals, all, endStation)
	return e
}

// Departures returns per-station departure counts for the window.
func (e *Engine) Departures(w Window) CountMap {
	if w.Unfiltered() {
		return e.allDepartures
	}
	return aggregate(e.trips, e.departures, w, startStation)
}

// Arrivals returns per-station arrival counts for the window.
func (e *Engine) Arrivals(w Window) CountMap {
	if w.Unfiltered() {
		return e.allArrivals
	}
	return aggregate(e.trips, e.arrivals, w, endStation)
}

// View runs the full query pipeline for a center minute: resolve the window,
// aggregate departures and arrivals, and join the counts onto the registry.
// minute is in [0, 1439] or UnfilteredMinute.
func (e *Engine) View(minute int) (models.TrafficView, error) {
	w, err := ResolveWindow(minute, e.halfWidth)
	if err != nil {
		return models.TrafficView{}, err
	}
	view := buildView(e.registry, e.Departures(w), e.Arrivals(w))
	view.Minute = minute
	return view, nil
}

// MinuteHistogram returns departure and arrival totals for every minute slot,
// including empty ones.
func (e *Engine) MinuteHistogram() []models.MinuteBucket {
	out := make([]models.MinuteBucket, models.MinutesPerDay)
	for m := 0; m < models.MinutesPerDay; m++ {
		out[m] = models.MinuteBucket{
			Minute:     m,
			Departures: len(e.departures.Bucket(m)),
			Arrivals:   len(e.arrivals.Bucket(m)),
		}
	}
	return out
}

// Registry returns the station registry backing this engine.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Trips returns the trip arena. Callers must not mutate it.
func (e *Engine) Trips() []models.Trip {
	return e.trips
}

// TripCount returns the number of ingested trips.
func (e *Engine) TripCount() int {
	return len(e.trips)
}

// HalfWidth returns the configured window half-width in minutes.
func (e *Engine) HalfWidth() int {
	return e.halfWidth
}
