package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

type LinkageStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestLinkageStoreSuite(t *testing.T) {
	suite.Run(t, new(LinkageStoreSuite))
}

func (s *LinkageStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)
}

func (s *LinkageStoreSuite) insert(d models.Domain, key string, nin domain.NIN, createdAt time.Time) {
	s.Require().NoError(s.store.Insert(s.ctx, &models.Record{
		Domain:    d,
		Key:       key,
		NIN:       nin,
		Status:    models.StatusActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}))
}

func (s *LinkageStoreSuite) TestKeysAreUniquePerDomain() {
	s.insert(models.DomainSIM, "072000001", "SL26000001", s.now)

	err := s.store.Insert(s.ctx, &models.Record{Domain: models.DomainSIM, Key: "072000001", NIN: "SL26000002"})
	s.ErrorIs(err, sentinel.ErrConflict)

	s.Run("same key in another domain is independent", func() {
		s.insert(models.DomainBank, "072000001", "SL26000002", s.now)
	})
}

func (s *LinkageStoreSuite) TestCountByNINIsPerDomain() {
	s.insert(models.DomainSIM, "072000001", "SL26000001", s.now)
	s.insert(models.DomainSIM, "072000002", "SL26000001", s.now)
	s.insert(models.DomainBank, "UBA-0000000001", "SL26000001", s.now)

	n, err := s.store.CountByNIN(s.ctx, models.DomainSIM, "SL26000001")
	s.Require().NoError(err)
	s.Equal(2, n)

	n, err = s.store.CountByNIN(s.ctx, models.DomainBank, "SL26000001")
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *LinkageStoreSuite) TestStatusAndDelete() {
	s.insert(models.DomainSIM, "072000001", "SL26000001", s.now)

	s.Require().NoError(s.store.UpdateStatus(s.ctx, models.DomainSIM, "072000001", models.StatusLost, s.now))
	r, err := s.store.FindByKey(s.ctx, models.DomainSIM, "072000001")
	s.Require().NoError(err)
	s.Equal(models.StatusLost, r.Status)

	s.Require().NoError(s.store.Delete(s.ctx, models.DomainSIM, "072000001"))
	_, err = s.store.FindByKey(s.ctx, models.DomainSIM, "072000001")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(s.ctx, models.DomainSIM, "072000001"), sentinel.ErrNotFound)
	s.ErrorIs(s.store.UpdateStatus(s.ctx, models.DomainSIM, "072000001", models.StatusActive, s.now), sentinel.ErrNotFound)
}

func (s *LinkageStoreSuite) TestSearch() {
	s.insert(models.DomainSIM, "072000001", "SL26000001", s.now)
	s.insert(models.DomainSIM, "076555555", "SL26000002", s.now)

	hits, err := s.store.Search(s.ctx, models.DomainSIM, "5555")
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal("076555555", hits[0].Key)

	hits, err = s.store.Search(s.ctx, models.DomainSIM, "sl26")
	s.Require().NoError(err)
	s.Len(hits, 2)
}

func (s *LinkageStoreSuite) TestSummaries() {
	since := s.now.Add(-time.Hour)
	s.insert(models.DomainSIM, "072000001", "SL26000001", s.now.Add(-3*time.Hour))
	s.insert(models.DomainSIM, "072000002", "SL26000001", s.now.Add(-10*time.Minute))
	s.insert(models.DomainSIM, "072000003", "SL26000002", s.now.Add(-2*time.Hour))

	sums, err := s.store.Summaries(s.ctx, models.DomainSIM, since)
	s.Require().NoError(err)
	s.Require().Len(sums, 2)

	s.Equal(domain.NIN("SL26000001"), sums[0].NIN)
	s.Equal(2, sums[0].Total)
	s.Equal([]string{"072000001", "072000002"}, sums[0].Keys)
	s.Equal(1, sums[0].Recent)
	s.Equal([]string{"072000002"}, sums[0].RecentKeys)

	s.Equal(0, sums[1].Recent)
	s.Empty(sums[1].RecentKeys)
}

func (s *LinkageStoreSuite) TestStats() {
	s.insert(models.DomainBank, "UBA-0000000001", "SL26000001", s.now.Add(-time.Hour))
	s.insert(models.DomainBank, "UBA-0000000002", "SL26000001", s.now.AddDate(0, 0, -3))
	s.insert(models.DomainBank, "UBA-0000000003", "SL26000002", s.now.AddDate(0, 0, -30))
	s.Require().NoError(s.store.UpdateStatus(s.ctx, models.DomainBank, "UBA-0000000003", models.StatusClosed, s.now))

	stats, err := s.store.Stats(s.ctx, models.DomainBank, s.now)
	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(1, stats.Today)
	s.Equal(2, stats.LastSevenDays)
	s.Equal(2, stats.ByStatus[models.StatusActive])
	s.Equal(1, stats.ByStatus[models.StatusClosed])
}

func (s *LinkageStoreSuite) TestRollback() {
	s.insert(models.DomainSIM, "072000001", "SL26000001", s.now)
	runner := txcontext.NewShardedRunner(time.Second)

	err := runner.RunInTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Insert(ctx, &models.Record{Domain: models.DomainSIM, Key: "072000002", NIN: "SL26000001"}))
		s.Require().NoError(s.store.Delete(ctx, models.DomainSIM, "072000001"))
		return errors.New("audit failed")
	})
	s.Require().Error(err)

	n, err := s.store.CountByNIN(s.ctx, models.DomainSIM, "SL26000001")
	s.Require().NoError(err)
	s.Equal(1, n)
	_, err = s.store.FindByKey(s.ctx, models.DomainSIM, "072000001")
	s.NoError(err)
}
