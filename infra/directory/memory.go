package directory

import (
	"context"
	"sync"

	"github.com/kilianp07/haulplan/core/model"
)

// MemoryStore keeps the directory in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []model.DriverEntry
}

// NewMemoryStore returns a store seeded with a copy of entries.
func NewMemoryStore(entries []model.DriverEntry) *MemoryStore {
	return &MemoryStore{entries: clone(entries)}
}

func (s *MemoryStore) Load(context.Context) ([]model.DriverEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.entries), nil
}

func (s *MemoryStore) Save(_ context.Context, entries []model.DriverEntry) error {
	s.mu.Lock()
	s.entries = clone(entries)
	s.mu.Unlock()
	return nil
}

// clone copies entries including their priority pointers.
func clone(entries []model.DriverEntry) []model.DriverEntry {
	if entries == nil {
		return nil
	}
	out := make([]model.DriverEntry, len(entries))
	for i, e := range entries {
		if e.Priority != nil {
			e.Priority = model.PriorityOf(*e.Priority)
		}
		out[i] = e
	}
	return out
}
