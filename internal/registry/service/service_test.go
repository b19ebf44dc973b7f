package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	linkmodels "ninhub/internal/linkage/models"
	linkstore "ninhub/internal/linkage/store"
	"ninhub/internal/registry/models"
	"ninhub/internal/registry/service"
	regstore "ninhub/internal/registry/store"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/audit/publishers/compliance"
	auditmemory "ninhub/pkg/platform/audit/store/memory"
	txcontext "ninhub/pkg/platform/tx"
	"ninhub/pkg/requestcontext"
)

var (
	now   = time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	admin = domain.Actor{ID: "ncra-1", Role: domain.RoleNCRAAdmin}
)

func validDetails() models.Details {
	return models.Details{
		FirstName:   "Ibrahim",
		MiddleName:  "K",
		LastName:    "Conteh",
		DateOfBirth: "1988-01-19",
		Gender:      "M",
		Address:     "Kenema",
	}
}

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	citizens   *regstore.InMemory
	linkages   *linkstore.InMemory
	auditStore *auditmemory.InMemoryStore
	service    *service.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.citizens = regstore.NewInMemory()
	s.linkages = linkstore.NewInMemory()
	s.auditStore = auditmemory.NewInMemoryStore()
	s.service = s.newService()
}

func (s *ServiceSuite) newService(opts ...service.Option) *service.Service {
	return service.New(s.citizens, s.linkages, txcontext.NewShardedRunner(time.Second), compliance.New(s.auditStore), opts...)
}

func (s *ServiceSuite) actions() []audit.Action {
	entries, err := s.auditStore.ListRecent(s.ctx, 0)
	s.Require().NoError(err)
	var out []audit.Action
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

func (s *ServiceSuite) TestRegister() {
	c, err := s.service.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)
	s.Regexp(`^SL26[0-9]{6}$`, c.NIN.String())
	s.Equal(now, c.CreatedAt)

	n, err := s.service.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal([]audit.Action{audit.ActionRegisterCitizen}, s.actions())
}

func (s *ServiceSuite) TestRegisterRetriesOnCollision() {
	issued := []domain.NIN{"SL26100000", "SL26100000", "SL26100001"}
	calls := 0
	svc := s.newService(service.WithNINGenerator(func(time.Time) (domain.NIN, error) {
		n := issued[calls]
		calls++
		return n, nil
	}))

	_, err := svc.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)
	c, err := svc.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)
	s.Equal(domain.NIN("SL26100001"), c.NIN)
	s.Len(s.actions(), 2)
}

func (s *ServiceSuite) TestRegisterGivesUp() {
	svc := s.newService(service.WithNINGenerator(func(time.Time) (domain.NIN, error) {
		return "SL26100000", nil
	}))
	_, err := svc.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)

	_, err = svc.Register(s.ctx, admin, validDetails())
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestRegisterValidation() {
	d := validDetails()
	d.DateOfBirth = "19/01/1988"
	_, err := s.service.Register(s.ctx, admin, d)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Empty(s.actions())
}

func (s *ServiceSuite) TestRegisterGeneratorFailure() {
	svc := s.newService(service.WithNINGenerator(func(time.Time) (domain.NIN, error) {
		return "", errors.New("no entropy")
	}))
	_, err := svc.Register(s.ctx, admin, validDetails())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestUpdate() {
	c, err := s.service.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)

	d := validDetails()
	d.Address = "Makeni"
	updated, err := s.service.Update(s.ctx, admin, c.NIN.String(), d)
	s.Require().NoError(err)
	s.Equal("Makeni", updated.Address)

	stored, err := s.citizens.FindByNIN(s.ctx, c.NIN)
	s.Require().NoError(err)
	s.Equal("Makeni", stored.Address)

	_, err = s.service.Update(s.ctx, admin, "SL26999999", d)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	d.FirstName = ""
	_, err = s.service.Update(s.ctx, admin, c.NIN.String(), d)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestDeleteRejectedWhileLinked() {
	c, err := s.service.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)
	s.Require().NoError(s.linkages.Insert(s.ctx, &linkmodels.Record{
		Domain: linkmodels.DomainBank, Key: "UBA-0000000001", NIN: c.NIN, Status: linkmodels.StatusActive,
		CreatedAt: now, UpdatedAt: now,
	}))

	err = s.service.Delete(s.ctx, admin, c.NIN.String())
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.citizens.FindByNIN(s.ctx, c.NIN)
	s.NoError(err)
}

func (s *ServiceSuite) TestDelete() {
	c, err := s.service.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(s.ctx, admin, c.NIN.String()))
	_, err = s.service.Verify(s.ctx, admin, c.NIN.String())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.service.Delete(s.ctx, admin, c.NIN.String())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal([]audit.Action{audit.ActionDeleteCitizen, audit.ActionRegisterCitizen}, s.actions())
}

func (s *ServiceSuite) TestVerifyIsAudited() {
	c, err := s.service.Register(s.ctx, admin, validDetails())
	s.Require().NoError(err)

	got, err := s.service.Verify(s.ctx, domain.Actor{ID: "bank-1", Role: domain.RoleBankOfficer}, c.NIN.String())
	s.Require().NoError(err)
	s.Equal("Ibrahim K Conteh", got.FullName())

	entries, err := s.auditStore.ListRecent(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(audit.ActionVerifyNIN, entries[0].Action)
	s.Equal(domain.ActorID("bank-1"), entries[0].ActorID)

	_, err = s.service.Verify(s.ctx, admin, "")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestList() {
	for range 3 {
		_, err := s.service.Register(s.ctx, admin, validDetails())
		s.Require().NoError(err)
	}
	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}
