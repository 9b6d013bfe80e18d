package repository

import (
	"database/sql"
	"fmt"

	"github.com/velomaps/bikeflow-backend-go/internal/database"
	"github.com/velomaps/bikeflow-backend-go/internal/models"
)

// StationRepository handles database operations for stations
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// EnsureSchema creates the stations table if it does not exist yet.
func (r *StationRepository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS stations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create stations table: %w", err)
	}
	return nil
}

// Count returns the number of stored stations.
func (r *StationRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM stations").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count stations: %w", err)
	}
	return n, nil
}

// ReplaceAll swaps the stored station set for the given one in a single
// transaction. Used by the CSV import and the admin reload.
func (r *StationRepository) ReplaceAll(stations []models.Station) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM stations"); err != nil {
			return fmt.Errorf("failed to clear stations: %w", err)
		}

		stmt, err := tx.Prepare("INSERT OR IGNORE INTO stations (id, name, latitude, longitude) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, s := range stations {
			if _, err := stmt.Exec(s.ID, s.Name, s.Latitude, s.Longitude); err != nil {
				return fmt.Errorf("failed to insert station %s: %w", s.ID, err)
			}
		}
		return nil
	})
}

// LoadAll returns every stored station in insertion order.
func (r *StationRepository) LoadAll() ([]models.Station, error) {
	rows, err := r.db.Query("SELECT id, name, latitude, longitude FROM stations ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return stations, nil
}
