package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ninhub/internal/registry/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

type CitizenStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestCitizenStoreSuite(t *testing.T) {
	suite.Run(t, new(CitizenStoreSuite))
}

func (s *CitizenStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *CitizenStoreSuite) newCitizen(nin string, createdAt time.Time) *models.Citizen {
	c, err := models.NewCitizen(domain.NIN(nin), models.Details{
		FirstName:   "Mohamed",
		LastName:    "Sesay",
		DateOfBirth: "1985-11-02",
		Gender:      "M",
		Address:     "Bo",
	}, createdAt)
	s.Require().NoError(err)
	return c
}

func (s *CitizenStoreSuite) TestCreateAndFind() {
	s.Run("creates and finds by NIN", func() {
		c := s.newCitizen("SL26000001", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, c))

		found, err := s.store.FindByNIN(s.ctx, c.NIN)
		s.Require().NoError(err)
		s.Equal(c.LastName, found.LastName)
	})

	s.Run("rejects duplicate NIN", func() {
		err := s.store.Create(s.ctx, s.newCitizen("SL26000001", time.Now()))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown NIN", func() {
		_, err := s.store.FindByNIN(s.ctx, "SL26999999")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *CitizenStoreSuite) TestListNewestFirst() {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Create(s.ctx, s.newCitizen("SL26000001", base)))
	s.Require().NoError(s.store.Create(s.ctx, s.newCitizen("SL26000002", base.Add(time.Hour))))

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(domain.NIN("SL26000002"), list[0].NIN)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *CitizenStoreSuite) TestWritesRollBackWithUnit() {
	original := s.newCitizen("SL26000001", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, original))
	runner := txcontext.NewShardedRunner(time.Second)

	err := runner.RunInTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Create(ctx, s.newCitizen("SL26000002", time.Now())))
		s.Require().NoError(s.store.Delete(ctx, original.NIN))
		return errors.New("audit failed")
	})
	s.Require().Error(err)

	_, err = s.store.FindByNIN(s.ctx, original.NIN)
	s.NoError(err, "deleted citizen must be restored")
	_, err = s.store.FindByNIN(s.ctx, "SL26000002")
	s.ErrorIs(err, sentinel.ErrNotFound, "created citizen must be removed")
}
