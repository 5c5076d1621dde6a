package store

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore implements FixStore using MySQL.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQL creates a new MySQL fix store on an open database handle.
func NewMySQL(db *sql.DB) (*MySQLStore, error) {
	if err := createMySQLSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &MySQLStore{db: db}, nil
}

// NewMySQLFromDSN creates a new MySQL fix store from a DSN.
// The DSN format is: user:password@tcp(host:port)/database
func NewMySQLFromDSN(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: failed to connect: %w", err)
	}

	return NewMySQL(db)
}

func createMySQLSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS fixes (
		timestamp_ms BIGINT PRIMARY KEY,
		latitude_e7  BIGINT NOT NULL,
		longitude_e7 BIGINT NOT NULL,
		accuracy     INT NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("mysql: failed to create schema: %w", err)
	}
	return nil
}

// Save persists fixes in a single transaction.
func (s *MySQLStore) Save(fixes []*Fix) error {
	return s.write(fixes, false)
}

// Replace deletes every stored fix and saves fixes in the same transaction.
func (s *MySQLStore) Replace(fixes []*Fix) error {
	return s.write(fixes, true)
}

func (s *MySQLStore) write(fixes []*Fix, replace bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("mysql: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// DELETE rather than TRUNCATE, which would commit implicitly.
	if replace {
		if _, err := tx.Exec("DELETE FROM fixes"); err != nil {
			return fmt.Errorf("mysql: failed to clear fixes: %w", err)
		}
	}

	stmt, err := tx.Prepare(`
	INSERT INTO fixes (timestamp_ms, latitude_e7, longitude_e7, accuracy)
	VALUES (?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		latitude_e7 = VALUES(latitude_e7),
		longitude_e7 = VALUES(longitude_e7),
		accuracy = VALUES(accuracy)
	`)
	if err != nil {
		return fmt.Errorf("mysql: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, fix := range fixes {
		if _, err := stmt.Exec(fix.TimestampMS, fix.LatitudeE7, fix.LongitudeE7, fix.Accuracy); err != nil {
			return fmt.Errorf("mysql: failed to save fix: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mysql: failed to commit fixes: %w", err)
	}
	return nil
}

// Clear removes every stored fix.
func (s *MySQLStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM fixes"); err != nil {
		return fmt.Errorf("mysql: failed to clear fixes: %w", err)
	}
	return nil
}

// All returns every stored fix, oldest first.
func (s *MySQLStore) All() ([]*Fix, error) {
	rows, err := s.db.Query(`
	SELECT timestamp_ms, latitude_e7, longitude_e7, accuracy
	FROM fixes
	ORDER BY timestamp_ms ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to query fixes: %w", err)
	}
	defer rows.Close()

	var fixes []*Fix
	for rows.Next() {
		fix, err := scanFix(rows)
		if err != nil {
			return nil, fmt.Errorf("mysql: %w", err)
		}
		fixes = append(fixes, fix)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: error iterating fixes: %w", err)
	}

	return fixes, nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
