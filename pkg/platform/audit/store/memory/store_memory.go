package memory

import (
	"context"
	"slices"
	"sync"

	audit "ninhub/pkg/platform/audit"
	txcontext "ninhub/pkg/platform/tx"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *InMemoryStore) Append(ctx context.Context, entry audit.Entry) error {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	if j, ok := txcontext.JournalFrom(ctx); ok {
		j.Record(func() { s.remove(entry.ID.String()) })
	}
	return nil
}

func (s *InMemoryStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = slices.DeleteFunc(s.entries, func(e audit.Entry) bool {
		return e.ID.String() == id
	})
}

// ListRecent returns the most recent entries, newest first. Entries with
// equal timestamps keep reverse append order.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	out := slices.Clone(s.entries)
	s.mu.RUnlock()
	slices.Reverse(out)

	slices.SortStableFunc(out, func(a, b audit.Entry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
