package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSQLiteStore(t *testing.T) {
	testFixStore(t, newTestSQLite(t))
}

func TestSQLiteStorePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	if err := s.Save([]*Fix{{TimestampMS: 3000, LatitudeE7: 520796733, LongitudeE7: 11965831, Accuracy: 18}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s.Close()

	fixes, err := s.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(fixes) != 1 || fixes[0].LatitudeE7 != 520796733 {
		t.Errorf("Expected the saved fix after reopening, got %v", fixes)
	}
}

func TestSQLiteStoreRejectsOutOfRangeAccuracy(t *testing.T) {
	s := newTestSQLite(t)

	if _, err := s.db.Exec(
		"INSERT INTO fixes (timestamp_ms, latitude_e7, longitude_e7, accuracy) VALUES (?, ?, ?, ?)",
		1000, 0, 0, 70000,
	); err != nil {
		t.Fatalf("Failed to insert raw row: %v", err)
	}

	if _, err := s.All(); !errors.Is(err, ErrAccuracyOutOfRange) {
		t.Errorf("Expected ErrAccuracyOutOfRange, got %v", err)
	}
}

func TestSQLiteStoreFailedReplaceKeepsFixes(t *testing.T) {
	s := newTestSQLite(t)

	if err := s.Save([]*Fix{
		{TimestampMS: 3000, LatitudeE7: 520796733, LongitudeE7: 11965831, Accuracy: 18},
		{TimestampMS: 6000, LatitudeE7: 520567467, LongitudeE7: 11485831, Accuracy: 20},
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Abort the transaction on the second insert, after the DELETE has run.
	if _, err := s.db.Exec(`
	CREATE TRIGGER reject_fix BEFORE INSERT ON fixes
	WHEN NEW.timestamp_ms = 13000
	BEGIN
		SELECT RAISE(ABORT, 'rejected');
	END
	`); err != nil {
		t.Fatalf("Failed to create trigger: %v", err)
	}

	err := s.Replace([]*Fix{
		{TimestampMS: 12000, Accuracy: 1},
		{TimestampMS: 13000, Accuracy: 1},
	})
	if err == nil {
		t.Fatal("Expected Replace to fail")
	}

	fixes, err := s.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(fixes) != 2 || fixes[0].TimestampMS != 3000 || fixes[1].TimestampMS != 6000 {
		t.Errorf("Expected the original 2 fixes after a failed Replace, got %d", len(fixes))
	}
}
