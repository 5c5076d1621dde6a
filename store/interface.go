package store

import (
	"errors"
	"fmt"
	"math"
)

// ErrAccuracyOutOfRange is returned when a stored accuracy does not fit in 16 bits.
var ErrAccuracyOutOfRange = errors.New("store: accuracy out of range")

// Fix represents a location history entry for storage.
// This is a copy of the main Fix type to avoid circular imports.
type Fix struct {
	TimestampMS int64  `json:"timestamp_ms"`
	LatitudeE7  int64  `json:"latitude_e7"`
	LongitudeE7 int64  `json:"longitude_e7"`
	Accuracy    uint16 `json:"accuracy"`
}

// FixStore defines the interface for location history storage backends.
// Fixes are keyed by timestamp. Implementations must be safe for concurrent use.
type FixStore interface {
	// Save persists fixes. A fix with the timestamp of an already stored fix
	// overwrites it, and within one call later fixes overwrite earlier ones.
	Save(fixes []*Fix) error

	// Replace atomically swaps every stored fix for fixes. If it fails the
	// previously stored fixes are left untouched.
	Replace(fixes []*Fix) error

	// Clear removes every stored fix.
	Clear() error

	// All returns every stored fix ordered by timestamp ascending.
	All() ([]*Fix, error)

	// Close releases any resources held by the store.
	Close() error
}

// accuracyFromInt narrows a stored accuracy, rejecting values that would wrap.
func accuracyFromInt(accuracy int64) (uint16, error) {
	if accuracy < 0 || accuracy > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d", ErrAccuracyOutOfRange, accuracy)
	}
	return uint16(accuracy), nil
}
