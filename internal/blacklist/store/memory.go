package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"ninhub/internal/blacklist/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

// InMemory keeps every blacklist entry, active and removed, ordered by insertion.
type InMemory struct {
	mu      sync.RWMutex
	entries []models.Entry
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// FindActive returns the ACTIVE entry for nin or sentinel.ErrNotFound.
func (s *InMemory) FindActive(_ context.Context, nin domain.NIN) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.activeIndex(nin); i >= 0 {
		e := s.entries[i]
		return &e, nil
	}
	return nil, sentinel.ErrNotFound
}

// Insert adds an ACTIVE entry. Fails with sentinel.ErrConflict when the NIN
// already has one.
func (s *InMemory) Insert(ctx context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.IsActive() && s.activeIndex(e.NIN) >= 0 {
		return sentinel.ErrConflict
	}
	s.entries = append(s.entries, *e)

	if j, ok := txcontext.JournalFrom(ctx); ok {
		id := e.ID
		j.Record(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.entries = slices.DeleteFunc(s.entries, func(x models.Entry) bool { return x.ID == id })
		})
	}
	return nil
}

// UpdateStatus moves entry id from `from` to `to`, stamping removal metadata.
// Returns sentinel.ErrNotFound when no entry with that id is in state `from`.
func (s *InMemory) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.Status, actor domain.ActorID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.entries, func(x models.Entry) bool { return x.ID == id && x.Status == from })
	if i < 0 {
		return sentinel.ErrNotFound
	}
	prev := s.entries[i]
	updated := prev
	updated.Status = to
	updated.UpdatedAt = now
	if to == models.StatusRemoved {
		updated.RemovedAt = &now
		updated.RemovedBy = actor
	}
	s.entries[i] = updated

	if j, ok := txcontext.JournalFrom(ctx); ok {
		j.Record(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if k := slices.IndexFunc(s.entries, func(x models.Entry) bool { return x.ID == id }); k >= 0 {
				s.entries[k] = prev
			}
		})
	}
	return nil
}

// ListActive returns ACTIVE entries, newest first.
func (s *InMemory) ListActive(_ context.Context) ([]*models.Entry, error) {
	return s.collect(func(e models.Entry) bool { return e.IsActive() }), nil
}

// ListByNIN returns the full history for a NIN, newest first.
func (s *InMemory) ListByNIN(_ context.Context, nin domain.NIN) ([]*models.Entry, error) {
	return s.collect(func(e models.Entry) bool { return e.NIN == nin }), nil
}

func (s *InMemory) collect(keep func(models.Entry) bool) []*models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if keep(s.entries[i]) {
			e := s.entries[i]
			out = append(out, &e)
		}
	}
	return out
}

func (s *InMemory) activeIndex(nin domain.NIN) int {
	return slices.IndexFunc(s.entries, func(x models.Entry) bool {
		return x.NIN == nin && x.IsActive()
	})
}
