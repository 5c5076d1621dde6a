package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements FixStore using SQLite.
// It uses the pure Go modernc.org/sqlite driver.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite fix store.
// The database file is created if it doesn't exist.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func createSchema(db *sql.DB) error {
	// The primary key keeps the rows in timestamp order, so All needs no extra index.
	schema := `
	CREATE TABLE IF NOT EXISTS fixes (
		timestamp_ms INTEGER PRIMARY KEY,
		latitude_e7  INTEGER NOT NULL,
		longitude_e7 INTEGER NOT NULL,
		accuracy     INTEGER NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: failed to create schema: %w", err)
	}
	return nil
}

// Save persists fixes in a single transaction.
func (s *SQLiteStore) Save(fixes []*Fix) error {
	return s.write(fixes, false)
}

// Replace deletes every stored fix and saves fixes in the same transaction.
func (s *SQLiteStore) Replace(fixes []*Fix) error {
	return s.write(fixes, true)
}

func (s *SQLiteStore) write(fixes []*Fix, replace bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.Exec("DELETE FROM fixes"); err != nil {
			return fmt.Errorf("sqlite: failed to clear fixes: %w", err)
		}
	}

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO fixes (timestamp_ms, latitude_e7, longitude_e7, accuracy)
	VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, fix := range fixes {
		if _, err := stmt.Exec(fix.TimestampMS, fix.LatitudeE7, fix.LongitudeE7, fix.Accuracy); err != nil {
			return fmt.Errorf("sqlite: failed to save fix: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: failed to commit fixes: %w", err)
	}
	return nil
}

// Clear removes every stored fix.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM fixes"); err != nil {
		return fmt.Errorf("sqlite: failed to clear fixes: %w", err)
	}
	return nil
}

// All returns every stored fix, oldest first.
func (s *SQLiteStore) All() ([]*Fix, error) {
	rows, err := s.db.Query(`
	SELECT timestamp_ms, latitude_e7, longitude_e7, accuracy
	FROM fixes
	ORDER BY timestamp_ms ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query fixes: %w", err)
	}
	defer rows.Close()

	var fixes []*Fix
	for rows.Next() {
		fix, err := scanFix(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		fixes = append(fixes, fix)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: error iterating fixes: %w", err)
	}

	return fixes, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanFix scans a fix from sql.Rows. It is shared by the SQL backends.
func scanFix(rows *sql.Rows) (*Fix, error) {
	var fix Fix
	var accuracy int64
	err := rows.Scan(
		&fix.TimestampMS,
		&fix.LatitudeE7,
		&fix.LongitudeE7,
		&accuracy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan fix: %w", err)
	}

	fix.Accuracy, err = accuracyFromInt(accuracy)
	if err != nil {
		return nil, fmt.Errorf("fix at %d: %w", fix.TimestampMS, err)
	}
	return &fix, nil
}
