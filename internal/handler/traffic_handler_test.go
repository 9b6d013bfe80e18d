package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velomaps/bikeflow-backend-go/internal/models"
	"github.com/velomaps/bikeflow-backend-go/internal/service"
	"github.com/velomaps/bikeflow-backend-go/internal/traffic"
)

func fixtureRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	at := func(hhmm string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04", "2023-06-14 "+hhmm)
		if err != nil {
			t.Fatalf("bad fixture time %q: %v", hhmm, err)
		}
		return ts
	}

	stations := []models.Station{
		{ID: "A", Name: "Harbor Square", Latitude: 45.51, Longitude: -73.56},
		{ID: "B", Name: "Mill Street", Latitude: 45.53, Longitude: -73.58},
	}
	trips := []models.Trip{
		{StartStationID: "A", EndStationID: "B", StartedAt: at("08:05"), EndedAt: at("08:20")},
		{StartStationID: "B", EndStationID: "A", StartedAt: at("08:50"), EndedAt: at("09:15")},
	}
	engine := traffic.NewEngine(traffic.NewRegistry(stations), trips, traffic.DefaultHalfWidth)

	trafficSvc := service.NewTrafficService(engine)
	stationSvc := service.NewStationService(trafficSvc)
	trafficHandler := NewTrafficHandler(trafficSvc)
	stationHandler := NewStationHandler(stationSvc)

	r := gin.New()
	r.GET("/api/v1/traffic", trafficHandler.GetTraffic)
	r.GET("/api/v1/traffic/minutes", trafficHandler.GetMinuteHistogram)
	r.GET("/api/v1/traffic/summary", trafficHandler.GetSummary)
	r.GET("/api/v1/stations", stationHandler.ListStations)
	r.GET("/api/v1/stations/nearby", stationHandler.GetNearby)
	r.GET("/api/v1/stations/:id", stationHandler.GetStation)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w, envelope
}

func TestGetTrafficFiltered(t *testing.T) {
	r := fixtureRouter(t)
	w, envelope := doRequest(t, r, "/api/v1/traffic?minute=480")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var view models.TrafficView
	if err := json.Unmarshal(envelope["data"], &view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if view.Minute != 480 {
		t.Errorf("minute = %d, want 480", view.Minute)
	}
	if len(view.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(view.Stations))
	}
	for _, st := range view.Stations {
		if st.TotalTraffic != st.Arrivals+st.Departures {
			t.Errorf("station %s: totals do not add up: %+v", st.ID, st)
		}
	}
}

func TestGetTrafficDefaultsToUnfiltered(t *testing.T) {
	r := fixtureRouter(t)
	w, envelope := doRequest(t, r, "/api/v1/traffic")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var view models.TrafficView
	if err := json.Unmarshal(envelope["data"], &view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if view.Minute != traffic.UnfilteredMinute {
		t.Errorf("minute = %d, want sentinel %d", view.Minute, traffic.UnfilteredMinute)
	}
	if view.MaxTotal != 2 {
		t.Errorf("maxTotal = %d, want 2", view.MaxTotal)
	}
}

func TestGetTrafficRejectsOutOfRange(t *testing.T) {
	r := fixtureRouter(t)
	for _, path := range []string{"/api/v1/traffic?minute=1440", "/api/v1/traffic?minute=-2"} {
		w, _ := doRequest(t, r, path)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestGetSummary(t *testing.T) {
	r := fixtureRouter(t)
	w, envelope := doRequest(t, r, "/api/v1/traffic/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var summary models.TrafficSummary
	if err := json.Unmarshal(envelope["data"], &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.StationCount != 2 || summary.TripCount != 2 {
		t.Errorf("summary counts = %d stations / %d trips, want 2/2", summary.StationCount, summary.TripCount)
	}
	// Each station sees one departure and one arrival all-time.
	if summary.MaxTotal != 2 {
		t.Errorf("maxTotal = %d, want 2", summary.MaxTotal)
	}
	if summary.MeanTotal != 2 {
		t.Errorf("meanTotal = %f, want 2", summary.MeanTotal)
	}
	if summary.Bounds == nil {
		t.Error("expected bounds for a populated registry")
	}
	if summary.AvgTripDistanceKM <= 0 {
		t.Errorf("avg trip distance = %f, want > 0", summary.AvgTripDistanceKM)
	}
}

func TestGetStationNotFound(t *testing.T) {
	r := fixtureRouter(t)
	w, _ := doRequest(t, r, "/api/v1/stations/nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetNearby(t *testing.T) {
	r := fixtureRouter(t)
	w, envelope := doRequest(t, r, "/api/v1/stations/nearby?lat=45.51&lon=-73.56&limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var data struct {
		Stations []models.StationDistance `json:"stations"`
	}
	if err := json.Unmarshal(envelope["data"], &data); err != nil {
		t.Fatalf("failed to decode nearby payload: %v", err)
	}
	if len(data.Stations) != 1 {
		t.Fatalf("expected 1 station, got %d", len(data.Stations))
	}
	if data.Stations[0].ID != "A" {
		t.Errorf("nearest station = %s, want A", data.Stations[0].ID)
	}
}

func TestGetNearbyRejectsBadCoordinates(t *testing.T) {
	r := fixtureRouter(t)
	w, _ := doRequest(t, r, "/api/v1/stations/nearby?lat=120&lon=0")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetMinuteHistogram(t *testing.T) {
	r := fixtureRouter(t)
	w, envelope := doRequest(t, r, "/api/v1/traffic/minutes")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var data struct {
		Minutes []models.MinuteBucket `json:"minutes"`
	}
	if err := json.Unmarshal(envelope["data"], &data); err != nil {
		t.Fatalf("failed to decode histogram payload: %v", err)
	}
	if len(data.Minutes) != models.MinutesPerDay {
		t.Errorf("histogram rows = %d, want %d", len(data.Minutes), models.MinutesPerDay)
	}
}
