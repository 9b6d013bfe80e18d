package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/velomaps/bikeflow-backend-go/internal/database"
	"github.com/velomaps/bikeflow-backend-go/internal/models"
)

// Timestamps are stored as local wall-clock text. The engine only derives
// minute-of-day from them, so keeping the wall clock as written avoids any
// zone shift between import and load.
const tripTimeLayout = "2006-01-02 15:04:05"

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

// EnsureSchema creates the trips table if it does not exist yet.
func (r *TripRepository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS trips (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			start_station_id TEXT NOT NULL,
			end_station_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create trips table: %w", err)
	}
	return nil
}

// Count returns the number of stored trips.
func (r *TripRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM trips").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return n, nil
}

// ReplaceAll swaps the stored trip log for the given one in a single
// transaction.
func (r *TripRepository) ReplaceAll(trips []models.Trip) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM trips"); err != nil {
			return fmt.Errorf("failed to clear trips: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO trips (start_station_id, end_station_id, started_at, ended_at)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, t := range trips {
			_, err := stmt.Exec(
				t.StartStationID, t.EndStationID,
				t.StartedAt.Format(tripTimeLayout), t.EndedAt.Format(tripTimeLayout),
			)
			if err != nil {
				return fmt.Errorf("failed to insert trip: %w", err)
			}
		}
		return nil
	})
}

// LoadAll returns the full stored trip log. Rows with timestamps that no
// longer parse are a data error and abort the load.
func (r *TripRepository) LoadAll() ([]models.Trip, error) {
	rows, err := r.db.Query("SELECT start_station_id, end_station_id, started_at, ended_at FROM trips ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var t models.Trip
		var startedAt, endedAt string
		if err := rows.Scan(&t.StartStationID, &t.EndStationID, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		if t.StartedAt, err = time.Parse(tripTimeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse trip start time %q: %w", startedAt, err)
		}
		if t.EndedAt, err = time.Parse(tripTimeLayout, endedAt); err != nil {
			return nil, fmt.Errorf("failed to parse trip end time %q: %w", endedAt, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return trips, nil
}
