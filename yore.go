package yore

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aadithya-v/yore/store"
)

// Yore suggests photo locations from a location history held in a FixStore.
//
// The history is served from an immutable snapshot. Reload and LoadHistory
// build a new snapshot and swap it in, so suggestions never block each other
// and never observe a half-loaded history.
type Yore struct {
	config      Config
	fixes       store.FixStore
	interpolate atomic.Bool

	// reloadMu serializes snapshot rebuilds and guards the store against Close.
	reloadMu sync.Mutex

	mu      sync.RWMutex
	history *History
	closed  bool

	stopReload chan struct{}
	reloadDone chan struct{}
}

// New creates a new Yore instance with the given configuration and loads the
// history currently held by the fix store.
// If FixStore is not provided, an SQLite store at DatabasePath is used.
func New(cfg Config) (*Yore, error) {
	cfg.applyDefaults()

	y := &Yore{
		config:  cfg,
		history: NewHistory(nil),
	}
	y.interpolate.Store(cfg.Interpolate)

	// Initialize fix store (default: SQLite)
	if cfg.FixStore != nil {
		y.fixes = cfg.FixStore
	} else {
		sqliteStore, err := store.NewSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("yore: failed to initialize SQLite store: %w", err)
		}
		y.fixes = sqliteStore
	}

	if err := y.Reload(); err != nil {
		if cfg.FixStore == nil {
			y.fixes.Close()
		}
		return nil, err
	}

	if cfg.ReloadInterval > 0 {
		y.stopReload = make(chan struct{})
		y.reloadDone = make(chan struct{})
		go y.reloadLoop(cfg.ReloadInterval)
	}

	return y, nil
}

// Close stops background reloading and releases the fix store.
// The last loaded history remains usable through Suggest and History.
func (y *Yore) Close() error {
	y.mu.Lock()
	if y.closed {
		y.mu.Unlock()
		return nil
	}
	y.closed = true
	y.mu.Unlock()

	if y.stopReload != nil {
		close(y.stopReload)
		<-y.reloadDone
	}

	y.reloadMu.Lock()
	defer y.reloadMu.Unlock()

	if err := y.fixes.Close(); err != nil {
		return fmt.Errorf("yore: failed to close fix store: %w", err)
	}
	return nil
}

// History returns the current location history snapshot.
func (y *Yore) History() *History {
	y.mu.RLock()
	defer y.mu.RUnlock()

	return y.history
}

// Interpolate reports whether suggestions are interpolated.
func (y *Yore) Interpolate() bool {
	return y.interpolate.Load()
}

// SetInterpolate switches between interpolated and nearest-fix suggestions.
func (y *Yore) SetInterpolate(interpolate bool) {
	y.interpolate.Store(interpolate)
}

// Reload rebuilds the history from the fix store and publishes it.
func (y *Yore) Reload() error {
	y.reloadMu.Lock()
	defer y.reloadMu.Unlock()

	return y.reloadLocked()
}

// LoadHistory replaces the stored location history with fixes and publishes
// it. Duplicate timestamps are resolved in favour of the later fix.
func (y *Yore) LoadHistory(fixes []Fix) error {
	y.reloadMu.Lock()
	defer y.reloadMu.Unlock()

	if y.isClosed() {
		return ErrClosed
	}

	storeFixes := make([]*store.Fix, len(fixes))
	for i, fix := range fixes {
		storeFixes[i] = fixToStore(fix)
	}

	// On failure the stored history and the published snapshot stay as they were.
	if err := y.fixes.Replace(storeFixes); err != nil {
		return fmt.Errorf("yore: failed to replace fixes: %w", err)
	}

	return y.reloadLocked()
}

// Suggest returns a location for a photo taken at photoTimestamp (seconds
// since the Unix epoch). existing holds the coordinates the photo already
// carries, or nil if it has none; photos with coordinates are never given a
// suggestion.
func (y *Yore) Suggest(photoTimestamp int64, existing *Coordinates) PhotoLocation {
	if existing != nil {
		return PhotoLocation{Kind: LocationExisting, Coordinates: *existing}
	}

	history := y.History()

	var fix Fix
	var ok bool
	if y.Interpolate() {
		fix, ok = history.InterpolateLocation(photoTimestamp)
	} else {
		fix, ok = history.MostLikelyLocation(photoTimestamp)
	}

	if !ok {
		return PhotoLocation{Kind: LocationNone}
	}

	return PhotoLocation{
		Kind:        LocationSuggested,
		Coordinates: fix.Coordinates(),
		Accuracy: SuggestionAccuracy{
			Space: fix.Accuracy,
			Time:  fix.Timestamp() - photoTimestamp,
		},
	}
}

// reloadLocked must be called with reloadMu held.
func (y *Yore) reloadLocked() error {
	if y.isClosed() {
		return ErrClosed
	}

	storeFixes, err := y.fixes.All()
	if err != nil {
		return fmt.Errorf("yore: failed to load fixes: %w", err)
	}

	fixes := make([]Fix, len(storeFixes))
	for i, f := range storeFixes {
		fixes[i] = storeToFix(f)
	}
	history := NewHistory(fixes)

	y.mu.Lock()
	y.history = history
	y.mu.Unlock()

	return nil
}

func (y *Yore) isClosed() bool {
	y.mu.RLock()
	defer y.mu.RUnlock()

	return y.closed
}

// reloadLoop periodically reloads the history until Close is called.
func (y *Yore) reloadLoop(interval time.Duration) {
	defer close(y.reloadDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := y.Reload(); err != nil && !errors.Is(err, ErrClosed) {
				log.Printf("yore: background reload failed: %v", err)
			}
		case <-y.stopReload:
			return
		}
	}
}

// storeToFix converts a store.Fix to a public Fix.
func storeToFix(f *store.Fix) Fix {
	return Fix{
		TimestampMS: f.TimestampMS,
		LatitudeE7:  f.LatitudeE7,
		LongitudeE7: f.LongitudeE7,
		Accuracy:    f.Accuracy,
	}
}

func fixToStore(f Fix) *store.Fix {
	return &store.Fix{
		TimestampMS: f.TimestampMS,
		LatitudeE7:  f.LatitudeE7,
		LongitudeE7: f.LongitudeE7,
		Accuracy:    f.Accuracy,
	}
}
