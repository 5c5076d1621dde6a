package store

import (
	"cmp"
	"slices"
	"sync"
)

// MemoryStore implements FixStore using an in-memory map.
// This is useful for testing and for histories that are decoded on every start.
type MemoryStore struct {
	mu    sync.RWMutex
	fixes map[int64]Fix // timestampMS -> fix
}

// NewMemoryStore creates a new, empty in-memory fix store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		fixes: make(map[int64]Fix),
	}
}

// Save persists fixes, overwriting any with the same timestamp.
func (s *MemoryStore) Save(fixes []*Fix) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fix := range fixes {
		s.fixes[fix.TimestampMS] = *fix
	}
	return nil
}

// Replace swaps the stored fixes for fixes.
func (s *MemoryStore) Replace(fixes []*Fix) error {
	replacement := make(map[int64]Fix, len(fixes))
	for _, fix := range fixes {
		replacement[fix.TimestampMS] = *fix
	}

	s.mu.Lock()
	s.fixes = replacement
	s.mu.Unlock()
	return nil
}

// Clear removes every stored fix.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.fixes)
	return nil
}

// All returns copies of every stored fix, oldest first.
func (s *MemoryStore) All() ([]*Fix, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fixes := make([]*Fix, 0, len(s.fixes))
	for _, fix := range s.fixes {
		fix := fix
		fixes = append(fixes, &fix)
	}

	slices.SortFunc(fixes, func(a, b *Fix) int {
		return cmp.Compare(a.TimestampMS, b.TimestampMS)
	})

	return fixes, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
