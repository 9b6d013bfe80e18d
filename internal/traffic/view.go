package traffic

import "github.com/velomaps/bikeflow-backend-go/internal/models"

// buildView joins the aggregate maps onto the registry. The registry decides
// which stations appear: a station absent from both maps still shows up with
// all-zero traffic, and counts under unregistered identifiers are dropped.
// Nothing is mutated; the view is freshly derived each call.
func buildView(r *Registry, departures, arrivals CountMap) models.TrafficView {
	stations := r.All()
	out := make([]models.StationTraffic, 0, len(stations))
	maxTotal := 0
	for _, s := range stations {
		st := models.StationTraffic{
			Station:    s,
			Arrivals:   arrivals.Get(s.ID),
			Departures: departures.Get(s.ID),
		}
		st.TotalTraffic = st.Arrivals + st.Departures
		if st.TotalTraffic > maxTotal {
			maxTotal = st.TotalTraffic
		}
		out = append(out, st)
	}
	return models.TrafficView{Stations: out, MaxTotal: maxTotal}
}
