package history

import (
	"context"
	"sync"

	corehistory "github.com/kilianp07/haulplan/core/history"
)

// MemoryStore keeps run records in memory. Records are lost on exit.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []corehistory.RunRecord
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(_ context.Context, rec corehistory.RunRecord) error {
	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Query(_ context.Context, q corehistory.Query) ([]corehistory.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []corehistory.RunRecord
	for _, r := range s.recs {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
