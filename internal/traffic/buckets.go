package traffic

import "github.com/velomaps/bikeflow-backend-go/internal/models"

// BucketSet assigns every trip to exactly one minute-of-day slot. Buckets hold
// indices into the engine's single trip arena rather than trip copies, so the
// departure and arrival sets share one owned slice. Populated once during
// ingestion, read-only afterwards.
type BucketSet struct {
	slots [models.MinutesPerDay][]int32
	total int
}

type minuteFunc func(models.Trip) int

func newBucketSet(trips []models.Trip, minute minuteFunc) *BucketSet {
	bs := &BucketSet{total: len(trips)}
	for i, t := range trips {
		m := minute(t)
		bs.slots[m] = append(bs.slots[m], int32(i))
	}
	return bs
}

// BucketTrips builds the departure bucket set (keyed by start minute) and the
// arrival bucket set (keyed by end minute) over the trip arena. No trip is
// dropped: rides referencing stations outside the registry still occupy their
// slots, they just never match a station during the view join.
func BucketTrips(trips []models.Trip) (departures, arrivals *BucketSet) {
	departures = newBucketSet(trips, models.Trip.StartMinute)
	arrivals = newBucketSet(trips, models.Trip.EndMinute)
	return departures, arrivals
}

// Bucket returns the arena indices of the trips in slot m.
func (b *BucketSet) Bucket(m int) []int32 {
	return b.slots[m]
}

// Total returns the number of trips across all slots.
func (b *BucketSet) Total() int {
	return b.total
}
