//go:build integration

package fraud_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	blstore "ninhub/internal/blacklist/store"
	"ninhub/internal/fraud"
	"ninhub/internal/linkage/models"
	linkstore "ninhub/internal/linkage/store"
	regmodels "ninhub/internal/registry/models"
	regstore "ninhub/internal/registry/store"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit/publishers/compliance"
	auditpostgres "ninhub/pkg/platform/audit/store/postgres"
	txcontext "ninhub/pkg/platform/tx"
	"ninhub/pkg/testutil/containers"
)

type PostgresEngineSuite struct {
	suite.Suite
	pg       *containers.PostgresContainer
	citizens *regstore.PostgresStore
	audit    *auditpostgres.Store
	engine   *fraud.Engine
}

func TestPostgresEngineSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresEngineSuite))
}

func (s *PostgresEngineSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.citizens = regstore.NewPostgres(s.pg.DB)
	s.audit = auditpostgres.New(s.pg.DB)

	engine, err := fraud.New(
		s.citizens,
		blstore.NewPostgres(s.pg.DB),
		linkstore.NewPostgres(s.pg.DB),
		txcontext.NewSQLRunner(s.pg.DB, txcontext.DefaultTimeout),
		compliance.New(s.audit),
	)
	s.Require().NoError(err)
	s.engine = engine
}

func (s *PostgresEngineSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "linkages", "blacklist", "audit_log", "citizens"))
}

func (s *PostgresEngineSuite) register(ctx context.Context, nin string) {
	c, err := regmodels.NewCitizen(domain.NIN(nin), regmodels.Details{
		FirstName:   "Mohamed",
		LastName:    "Sesay",
		DateOfBirth: "1985-11-02",
		Gender:      "M",
		Address:     "4 Wilkinson Road, Freetown",
	}, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.citizens.Create(ctx, c))
}

func (s *PostgresEngineSuite) TestConcurrentAdmissionsOnSameKey() {
	ctx := context.Background()
	const attempts = 8
	for i := 0; i < attempts; i++ {
		s.register(ctx, fmt.Sprintf("SL2570000%d", i))
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes = map[string]int{}
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := s.engine.Admit(ctx, domain.Actor{ID: "officer-1", Role: domain.RoleTelecomOfficer}, models.Record{
				Domain: models.DomainSIM,
				NIN:    domain.NIN(fmt.Sprintf("SL2570000%d", i)),
				Key:    "0721234567",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				outcomes["error"]++
			case d.Admitted():
				outcomes["admitted"]++
			default:
				outcomes[string(d.Reason)]++
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, outcomes["admitted"])
	s.Equal(attempts-1, outcomes[string(dErrors.CodeDuplicateKey)])

	entries, err := s.audit.ListRecent(ctx, 50)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *PostgresEngineSuite) TestBlacklistReAddAfterRemoval() {
	ctx := context.Background()
	actor := domain.Actor{ID: "admin-1", Role: domain.RoleNCRAAdmin}

	_, err := s.engine.AddToBlacklist(ctx, actor, "SL25999999", "Fraudulent ID use")
	s.Require().NoError(err)

	_, err = s.engine.AddToBlacklist(ctx, actor, "SL25999999", "Duplicate")
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyBlacklisted))

	_, err = s.engine.RemoveFromBlacklist(ctx, actor, "SL25999999")
	s.Require().NoError(err)

	_, err = s.engine.AddToBlacklist(ctx, actor, "SL25999999", "Reoffended")
	s.Require().NoError(err)

	history, err := s.engine.BlacklistHistory(ctx, "SL25999999")
	s.Require().NoError(err)
	s.Len(history, 2)
}
