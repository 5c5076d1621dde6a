package store

import (
	"testing"
)

// testFixStore runs the behaviour every FixStore must share.
func testFixStore(t *testing.T, s FixStore) {
	t.Helper()

	t.Run("empty", func(t *testing.T) {
		fixes, err := s.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(fixes) != 0 {
			t.Errorf("Expected no fixes, got %d", len(fixes))
		}
	})

	t.Run("save and load in order", func(t *testing.T) {
		err := s.Save([]*Fix{
			{TimestampMS: 6000, LatitudeE7: 520567467, LongitudeE7: 11485831, Accuracy: 20},
			{TimestampMS: 3000, LatitudeE7: 520796733, LongitudeE7: 11965831, Accuracy: 18},
			{TimestampMS: -1000, LatitudeE7: -338688000, LongitudeE7: 1512093000, Accuracy: 65535},
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		fixes, err := s.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(fixes) != 3 {
			t.Fatalf("Expected 3 fixes, got %d", len(fixes))
		}

		want := []int64{-1000, 3000, 6000}
		for i, fix := range fixes {
			if fix.TimestampMS != want[i] {
				t.Errorf("fixes[%d].TimestampMS = %d, want %d", i, fix.TimestampMS, want[i])
			}
		}
		if *fixes[0] != (Fix{TimestampMS: -1000, LatitudeE7: -338688000, LongitudeE7: 1512093000, Accuracy: 65535}) {
			t.Errorf("Fix did not round trip: %+v", *fixes[0])
		}
	})

	t.Run("same timestamp overwrites", func(t *testing.T) {
		err := s.Save([]*Fix{
			{TimestampMS: 3000, LatitudeE7: 1, LongitudeE7: 1, Accuracy: 1},
			{TimestampMS: 3000, LatitudeE7: 2, LongitudeE7: 2, Accuracy: 2},
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		fixes, err := s.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(fixes) != 3 {
			t.Fatalf("Expected 3 fixes, got %d", len(fixes))
		}
		if fixes[1].LatitudeE7 != 2 || fixes[1].Accuracy != 2 {
			t.Errorf("Expected the last saved fix to win, got %+v", *fixes[1])
		}
	})

	t.Run("save nothing", func(t *testing.T) {
		if err := s.Save(nil); err != nil {
			t.Fatalf("Save(nil) failed: %v", err)
		}
	})

	t.Run("replace", func(t *testing.T) {
		err := s.Replace([]*Fix{
			{TimestampMS: 9000, LatitudeE7: 9, LongitudeE7: 9, Accuracy: 9},
			{TimestampMS: 8000, LatitudeE7: 7, LongitudeE7: 7, Accuracy: 7},
			{TimestampMS: 8000, LatitudeE7: 8, LongitudeE7: 8, Accuracy: 8},
		})
		if err != nil {
			t.Fatalf("Replace failed: %v", err)
		}

		fixes, err := s.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(fixes) != 2 {
			t.Fatalf("Expected only the 2 replacement fixes, got %d", len(fixes))
		}
		if fixes[0].TimestampMS != 8000 || fixes[0].LatitudeE7 != 8 {
			t.Errorf("Expected the last fix at 8000 to win, got %+v", *fixes[0])
		}
		if fixes[1].TimestampMS != 9000 {
			t.Errorf("fixes[1].TimestampMS = %d, want 9000", fixes[1].TimestampMS)
		}
	})

	t.Run("replace with nothing", func(t *testing.T) {
		if err := s.Save([]*Fix{{TimestampMS: 1000, Accuracy: 1}}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := s.Replace(nil); err != nil {
			t.Fatalf("Replace(nil) failed: %v", err)
		}

		fixes, err := s.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(fixes) != 0 {
			t.Errorf("Expected no fixes after Replace(nil), got %d", len(fixes))
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}

		fixes, err := s.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(fixes) != 0 {
			t.Errorf("Expected no fixes after Clear, got %d", len(fixes))
		}
	})
}
