package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if _, err := conn.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return conn
}

func countItems(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	return n
}

func TestTransactionCommits(t *testing.T) {
	conn := testDB(t)

	err := Transaction(conn, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO items (id) VALUES (1)")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := countItems(t, conn); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	conn := testDB(t)
	boom := errors.New("boom")

	err := Transaction(conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO items (id) VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if n := countItems(t, conn); n != 0 {
		t.Errorf("count = %d, want 0 after rollback", n)
	}
}
