package traffic

import "github.com/velomaps/bikeflow-backend-go/internal/models"

// Registry holds the known stations, keyed by identifier. It is authoritative
// for which stations exist: trips may reference identifiers outside it, but
// only registered stations ever appear in a traffic view.
type Registry struct {
	byID  map[string]models.Station
	order []models.Station
}

// NewRegistry builds a registry from the loaded station records. On duplicate
// identifiers the first record wins.
func NewRegistry(stations []models.Station) *Registry {
	r := &Registry{byID: make(map[string]models.Station, len(stations))}
	for _, s := range stations {
		if _, ok := r.byID[s.ID]; ok {
			continue
		}
		r.byID[s.ID] = s
		r.order = append(r.order, s)
	}
	return r
}

// Get returns the station with the given identifier.
func (r *Registry) Get(id string) (models.Station, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// All returns the stations in load order. Callers must not mutate the slice.
func (r *Registry) All() []models.Station {
	return r.order
}

// Len returns the number of known stations.
func (r *Registry) Len() int {
	return len(r.order)
}
