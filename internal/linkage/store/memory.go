package store

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

type recordKey struct {
	domain models.Domain
	key    string
}

// InMemory holds linkage records for both domains, unique on (domain, key).
type InMemory struct {
	mu      sync.RWMutex
	records map[recordKey]models.Record
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[recordKey]models.Record)}
}

func (s *InMemory) CountByNIN(_ context.Context, d models.Domain, nin domain.NIN) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for k, r := range s.records {
		if k.domain == d && r.NIN == nin {
			n++
		}
	}
	return n, nil
}

func (s *InMemory) FindByKey(_ context.Context, d models.Domain, key string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[recordKey{d, key}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

// Insert adds a record. Fails with sentinel.ErrConflict when the key is taken.
func (s *InMemory) Insert(ctx context.Context, r *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := recordKey{r.Domain, r.Key}
	if _, exists := s.records[k]; exists {
		return sentinel.ErrConflict
	}
	s.records[k] = *r
	s.record(ctx, k, nil)
	return nil
}

func (s *InMemory) UpdateStatus(ctx context.Context, d models.Domain, key string, status models.Status, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := recordKey{d, key}
	prev, ok := s.records[k]
	if !ok {
		return sentinel.ErrNotFound
	}
	updated := prev
	updated.Status = status
	updated.UpdatedAt = now
	s.records[k] = updated
	s.record(ctx, k, &prev)
	return nil
}

func (s *InMemory) Delete(ctx context.Context, d models.Domain, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := recordKey{d, key}
	prev, ok := s.records[k]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, k)
	s.record(ctx, k, &prev)
	return nil
}

// List returns the domain's records, newest first.
func (s *InMemory) List(_ context.Context, d models.Domain) ([]*models.Record, error) {
	return s.filter(d, func(models.Record) bool { return true }), nil
}

// Search matches query as a case-insensitive substring of the key or NIN.
func (s *InMemory) Search(_ context.Context, d models.Domain, query string) ([]*models.Record, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	return s.filter(d, func(r models.Record) bool {
		return strings.Contains(strings.ToUpper(r.Key), q) || strings.Contains(r.NIN.String(), q)
	}), nil
}

// Summaries aggregates records per NIN; keys are ordered by creation time.
func (s *InMemory) Summaries(_ context.Context, d models.Domain, since time.Time) ([]models.Summary, error) {
	records := s.filter(d, func(models.Record) bool { return true })
	slices.SortFunc(records, func(a, b *models.Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})

	byNIN := make(map[domain.NIN]*models.Summary)
	for _, r := range records {
		sum, ok := byNIN[r.NIN]
		if !ok {
			sum = &models.Summary{NIN: r.NIN}
			byNIN[r.NIN] = sum
		}
		sum.Total++
		sum.Keys = append(sum.Keys, r.Key)
		if !r.CreatedAt.Before(since) {
			sum.Recent++
			sum.RecentKeys = append(sum.RecentKeys, r.Key)
		}
	}

	out := make([]models.Summary, 0, len(byNIN))
	for _, sum := range byNIN {
		out = append(out, *sum)
	}
	slices.SortFunc(out, func(a, b models.Summary) int { return cmp.Compare(a.NIN, b.NIN) })
	return out, nil
}

func (s *InMemory) Stats(_ context.Context, d models.Domain, now time.Time) (*models.Stats, error) {
	dayStart, weekStart := statsWindows(now)
	stats := &models.Stats{ByStatus: make(map[models.Status]int)}
	if d == models.DomainBank {
		stats.ByAccountType = make(map[models.AccountType]int)
	}
	for _, r := range s.filter(d, func(models.Record) bool { return true }) {
		stats.Total++
		stats.ByStatus[r.Status]++
		if stats.ByAccountType != nil && r.AccountType != "" {
			stats.ByAccountType[r.AccountType]++
		}
		if !r.CreatedAt.Before(dayStart) {
			stats.Today++
		}
		if !r.CreatedAt.Before(weekStart) {
			stats.LastSevenDays++
		}
	}
	return stats, nil
}

func (s *InMemory) filter(d models.Domain, keep func(models.Record) bool) []*models.Record {
	s.mu.RLock()
	var out []*models.Record
	for k, r := range s.records {
		if k.domain == d && keep(r) {
			out = append(out, &r)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

func (s *InMemory) record(ctx context.Context, k recordKey, prev *models.Record) {
	j, ok := txcontext.JournalFrom(ctx)
	if !ok {
		return
	}
	j.Record(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if prev == nil {
			delete(s.records, k)
			return
		}
		s.records[k] = *prev
	})
}

// statsWindows returns the start of now's calendar day and the start of the
// trailing seven-day window.
func statsWindows(now time.Time) (dayStart, weekStart time.Time) {
	y, m, d := now.Date()
	dayStart = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return dayStart, now.AddDate(0, 0, -7)
}
