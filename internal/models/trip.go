package models

import "time"

// MinutesPerDay is the bucket granularity of the aggregation engine:
// one bucket per wall-clock minute.
const MinutesPerDay = 1440

// Trip is one ride from the trip log. The engine only ever looks at the
// time-of-day component of the timestamps; date and zone are carried along
// but never compared.
type Trip struct {
	StartStationID string    `json:"startStationId"`
	EndStationID   string    `json:"endStationId"`
	StartedAt      time.Time `json:"startedAt"`
	EndedAt        time.Time `json:"endedAt"`
}

// StartMinute returns the minute-of-day the trip departed.
func (t Trip) StartMinute() int { return MinuteOfDay(t.StartedAt) }

// EndMinute returns the minute-of-day the trip arrived.
func (t Trip) EndMinute() int { return MinuteOfDay(t.EndedAt) }

// MinuteOfDay converts a timestamp to its minute-of-day in [0, 1439], taking
// the wall clock the timestamp already carries at face value. No timezone
// conversion happens here.
func MinuteOfDay(ts time.Time) int {
	return ts.Hour()*60 + ts.Minute()
}
