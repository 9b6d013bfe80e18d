package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadStations(t *testing.T) {
	path := writeFixture(t, "stations.csv", `station_id,name,lat,lon
A,Harbor Square,45.51,-73.56
B,Mill Street,45.53,-73.58
C,Broken,not-a-number,-73.60
`)

	stations, res, err := LoadStations(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Loaded != 2 || res.Skipped != 1 {
		t.Errorf("result = %+v, want 2 loaded / 1 skipped", res)
	}
	if len(stations) != 2 || stations[0].ID != "A" || stations[1].Name != "Mill Street" {
		t.Errorf("unexpected stations: %+v", stations)
	}
}

func TestLoadStationsAlternateHeaders(t *testing.T) {
	path := writeFixture(t, "stations.csv", `code,station_name,latitude,longitude
42,Old Port,45.50,-73.55
`)

	stations, _, err := LoadStations(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stations) != 1 || stations[0].ID != "42" || stations[0].Latitude != 45.50 {
		t.Errorf("unexpected stations: %+v", stations)
	}
}

func TestLoadStationsMissingColumns(t *testing.T) {
	path := writeFixture(t, "stations.csv", "foo,bar\n1,2\n")
	if _, _, err := LoadStations(path); err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestLoadTrips(t *testing.T) {
	path := writeFixture(t, "trips.csv", `start_station_id,end_station_id,started_at,ended_at
A,B,2023-06-14 08:05:00,2023-06-14 08:20:00
B,A,2023-06-14T08:50:00Z,2023-06-14T09:15:00Z
A,A,garbage,2023-06-14 00:10:00
,B,2023-06-14 10:00:00,2023-06-14 10:30:00
`)

	trips, res, err := LoadTrips(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Loaded != 2 || res.Skipped != 2 {
		t.Errorf("result = %+v, want 2 loaded / 2 skipped", res)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if got := trips[0].StartMinute(); got != 8*60+5 {
		t.Errorf("trip 0 start minute = %d, want 485", got)
	}
	if got := trips[1].EndMinute(); got != 9*60+15 {
		t.Errorf("trip 1 end minute = %d, want 555", got)
	}
}

func TestLoadTripsShortRows(t *testing.T) {
	path := writeFixture(t, "trips.csv", `start_station_id,end_station_id,started_at,ended_at
A,B
`)

	trips, res, err := LoadTrips(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 0 || res.Skipped != 1 {
		t.Errorf("short row should be skipped, got %+v / %+v", trips, res)
	}
}
