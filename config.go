package yore

import (
	"time"

	"github.com/aadithya-v/yore/store"
)

// Config contains configuration options for Yore.
type Config struct {
	// Interpolate makes suggestions interpolate between the fixes either side
	// of a photo's timestamp instead of picking the nearest one.
	// Default: false.
	Interpolate bool

	// FixStore is the storage backend for the location history.
	// Default: SQLite store (creates yore.db in current directory).
	FixStore store.FixStore

	// DatabasePath is the path for the default SQLite database.
	// Only used if FixStore is nil.
	// Default: "yore.db".
	DatabasePath string

	// ReloadInterval is how often the history is reloaded from FixStore,
	// picking up fixes written by other processes.
	// Default: 0 (never; call Reload explicitly).
	ReloadInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DatabasePath: "yore.db",
	}
}

// applyDefaults fills in default values for zero-value fields.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.DatabasePath == "" {
		c.DatabasePath = defaults.DatabasePath
	}
	if c.ReloadInterval < 0 {
		c.ReloadInterval = defaults.ReloadInterval
	}
}
