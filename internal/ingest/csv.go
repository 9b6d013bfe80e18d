package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/velomaps/bikeflow-backend-go/internal/models"
)

// Result carries the outcome of one CSV import. Skipped rows were malformed
// (unparseable timestamp or coordinate, missing field); they never reach the
// aggregation engine, which assumes clean input.
type Result struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Timestamp layouts seen across bike-share trip exports, tried in order.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	return records, nil
}

// columnIndex finds a header column by name, case-insensitively, trying each
// candidate in order. Returns -1 when none match.
func columnIndex(head []string, candidates ...string) int {
	for _, col := range candidates {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
	}
	return -1
}

// LoadStations reads the station list. Rows with malformed coordinates are
// skipped and counted.
func LoadStations(path string) ([]models.Station, Result, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, Result{}, err
	}

	head := records[0]
	idID := columnIndex(head, "station_id", "id", "code")
	idName := columnIndex(head, "name", "station_name")
	idLat := columnIndex(head, "lat", "latitude")
	idLon := columnIndex(head, "lon", "lng", "longitude")
	if idID < 0 || idName < 0 || idLat < 0 || idLon < 0 {
		return nil, Result{}, fmt.Errorf("%s: missing required station columns", path)
	}

	var stations []models.Station
	var res Result
	maxIdx := max(idID, idName, idLat, idLon)
	for _, row := range records[1:] {
		if len(row) <= maxIdx || strings.TrimSpace(row[idID]) == "" {
			res.Skipped++
			continue
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(row[idLat]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(row[idLon]), 64)
		if errLat != nil || errLon != nil {
			log.WithField("station", row[idID]).Debug("skipping station with bad coordinates")
			res.Skipped++
			continue
		}
		stations = append(stations, models.Station{
			ID:        strings.TrimSpace(row[idID]),
			Name:      strings.TrimSpace(row[idName]),
			Latitude:  lat,
			Longitude: lon,
		})
		res.Loaded++
	}
	return stations, res, nil
}

// LoadTrips reads the trip log. Rows with timestamps that do not parse are
// rejected here so the bucketer downstream never sees them.
func LoadTrips(path string) ([]models.Trip, Result, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, Result{}, err
	}

	head := records[0]
	idStart := columnIndex(head, "start_station_id", "start_station_code")
	idEnd := columnIndex(head, "end_station_id", "end_station_code")
	idStartAt := columnIndex(head, "started_at", "start_date", "start_time")
	idEndAt := columnIndex(head, "ended_at", "end_date", "end_time")
	if idStart < 0 || idEnd < 0 || idStartAt < 0 || idEndAt < 0 {
		return nil, Result{}, fmt.Errorf("%s: missing required trip columns", path)
	}

	var trips []models.Trip
	var res Result
	maxIdx := max(idStart, idEnd, idStartAt, idEndAt)
	for _, row := range records[1:] {
		if len(row) <= maxIdx {
			res.Skipped++
			continue
		}
		startedAt, errStart := parseTime(row[idStartAt])
		endedAt, errEnd := parseTime(row[idEndAt])
		if errStart != nil || errEnd != nil {
			log.WithFields(log.Fields{
				"start": row[idStartAt],
				"end":   row[idEndAt],
			}).Debug("skipping trip with bad timestamp")
			res.Skipped++
			continue
		}
		start := strings.TrimSpace(row[idStart])
		end := strings.TrimSpace(row[idEnd])
		if start == "" || end == "" {
			res.Skipped++
			continue
		}
		trips = append(trips, models.Trip{
			StartStationID: start,
			EndStationID:   end,
			StartedAt:      startedAt,
			EndedAt:        endedAt,
		})
		res.Loaded++
	}
	return trips, res, nil
}
