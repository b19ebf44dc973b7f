package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"ninhub/internal/registry/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

// InMemory stores citizen records in a map. Writes made inside a
// tx.ShardedRunner unit are undone if the unit fails.
type InMemory struct {
	mu       sync.RWMutex
	citizens map[domain.NIN]models.Citizen
}

func NewInMemory() *InMemory {
	return &InMemory{citizens: make(map[domain.NIN]models.Citizen)}
}

func (s *InMemory) Create(ctx context.Context, c *models.Citizen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.citizens[c.NIN]; exists {
		return sentinel.ErrConflict
	}
	s.citizens[c.NIN] = *c
	s.record(ctx, c.NIN, nil)
	return nil
}

func (s *InMemory) FindByNIN(_ context.Context, nin domain.NIN) (*models.Citizen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.citizens[nin]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemory) Update(ctx context.Context, c *models.Citizen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.citizens[c.NIN]
	if !ok {
		return sentinel.ErrNotFound
	}
	s.citizens[c.NIN] = *c
	s.record(ctx, c.NIN, &prev)
	return nil
}

func (s *InMemory) Delete(ctx context.Context, nin domain.NIN) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.citizens[nin]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.citizens, nin)
	s.record(ctx, nin, &prev)
	return nil
}

// List returns citizens newest first.
func (s *InMemory) List(_ context.Context) ([]*models.Citizen, error) {
	s.mu.RLock()
	out := make([]*models.Citizen, 0, len(s.citizens))
	for _, c := range s.citizens {
		out = append(out, &c)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.Citizen) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.NIN, b.NIN)
	})
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.citizens), nil
}

// record registers an undo that restores prev (or removes the NIN when prev is nil).
func (s *InMemory) record(ctx context.Context, nin domain.NIN, prev *models.Citizen) {
	j, ok := txcontext.JournalFrom(ctx)
	if !ok {
		return
	}
	j.Record(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if prev == nil {
			delete(s.citizens, nin)
			return
		}
		s.citizens[nin] = *prev
	})
}
