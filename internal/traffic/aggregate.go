package traffic

import "github.com/velomaps/bikeflow-backend-go/internal/models"

// CountMap maps a station identifier to a trip count. A station with no
// matching trips is simply absent; lookups must treat absence as zero, never
// as an error.
type CountMap map[string]int

// Get returns the count for id, defaulting to zero.
func (m CountMap) Get(id string) int {
	return m[id]
}

type stationFunc func(models.Trip) string

func startStation(t models.Trip) string { return t.StartStationID }
func endStation(t models.Trip) string   { return t.EndStationID }

// aggregate counts trips per station over the window. The unfiltered window
// walks the full arena directly instead of unioning all 1440 buckets. Given
// the same arena, bucket set and window, the result is identical on every
// call; there is no hidden state.
func aggregate(trips []models.Trip, buckets *BucketSet, w Window, key stationFunc) CountMap {
	counts := make(CountMap)
	if w.Unfiltered() {
		for _, t := range trips {
			counts[key(t)]++
		}
		return counts
	}
	for _, m := range w.Minutes() {
		for _, i := range buckets.Bucket(m) {
			counts[key(trips[i])]++
		}
	}
	return counts
}
