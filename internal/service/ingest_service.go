package service

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/velomaps/bikeflow-backend-go/internal/config"
	"github.com/velomaps/bikeflow-backend-go/internal/ingest"
	"github.com/velomaps/bikeflow-backend-go/internal/models"
	"github.com/velomaps/bikeflow-backend-go/internal/repository"
	"github.com/velomaps/bikeflow-backend-go/internal/traffic"
)

// IngestService moves data from the CSV exports into the sqlite store and
// builds engine snapshots from the store. Ingestion runs once at startup and
// again on each admin reload; the engine never sees a row the loaders
// rejected.
type IngestService struct {
	stations *repository.StationRepository
	trips    *repository.TripRepository
	cfg      *config.Config
}

// NewIngestService creates a new ingest service
func NewIngestService(stations *repository.StationRepository, trips *repository.TripRepository, cfg *config.Config) *IngestService {
	return &IngestService{stations: stations, trips: trips, cfg: cfg}
}

// ImportCSV loads both CSV exports and replaces the stored dataset.
func (s *IngestService) ImportCSV() (stationRes, tripRes ingest.Result, err error) {
	stations, stationRes, err := ingest.LoadStations(s.cfg.StationsCSV)
	if err != nil {
		return stationRes, tripRes, fmt.Errorf("failed to load stations: %w", err)
	}
	trips, tripRes, err := ingest.LoadTrips(s.cfg.TripsCSV)
	if err != nil {
		return stationRes, tripRes, fmt.Errorf("failed to load trips: %w", err)
	}

	if err := s.stations.ReplaceAll(stations); err != nil {
		return stationRes, tripRes, err
	}
	if err := s.trips.ReplaceAll(trips); err != nil {
		return stationRes, tripRes, err
	}

	log.WithFields(log.Fields{
		"stations":         stationRes.Loaded,
		"stations_skipped": stationRes.Skipped,
		"trips":            tripRes.Loaded,
		"trips_skipped":    tripRes.Skipped,
	}).Info("csv import complete")
	return stationRes, tripRes, nil
}

// BuildEngine constructs a fresh engine from the stored dataset.
func (s *IngestService) BuildEngine() (*traffic.Engine, error) {
	stations, err := s.stations.LoadAll()
	if err != nil {
		return nil, err
	}
	trips, err := s.trips.LoadAll()
	if err != nil {
		return nil, err
	}
	return traffic.NewEngine(traffic.NewRegistry(stations), trips, s.cfg.WindowHalfWidth), nil
}

// Bootstrap prepares the store for first use: ensures the schema, imports the
// CSV exports when the store is still empty, and builds the initial engine.
func (s *IngestService) Bootstrap() (*traffic.Engine, error) {
	if err := s.stations.EnsureSchema(); err != nil {
		return nil, err
	}
	if err := s.trips.EnsureSchema(); err != nil {
		return nil, err
	}

	n, err := s.trips.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if _, _, err := s.ImportCSV(); err != nil {
			return nil, err
		}
	}
	return s.BuildEngine()
}

// Reload re-imports the CSV exports and swaps a fresh engine into the traffic
// service.
func (s *IngestService) Reload(ts *TrafficService) (models.TrafficSummary, error) {
	if _, _, err := s.ImportCSV(); err != nil {
		return models.TrafficSummary{}, err
	}
	engine, err := s.BuildEngine()
	if err != nil {
		return models.TrafficSummary{}, err
	}
	ts.Swap(engine)
	return ts.Summary()
}
