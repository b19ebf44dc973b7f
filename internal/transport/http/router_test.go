package httptransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	blhandler "ninhub/internal/blacklist/handler"
	blstore "ninhub/internal/blacklist/store"
	"ninhub/internal/fraud"
	jwttoken "ninhub/internal/jwt_token"
	linkhandler "ninhub/internal/linkage/handler"
	linkservice "ninhub/internal/linkage/service"
	linkstore "ninhub/internal/linkage/store"
	"ninhub/internal/platform/logger"
	"ninhub/internal/platform/metrics"
	ratelimit "ninhub/internal/ratelimit/middleware"
	ratelimitmodels "ninhub/internal/ratelimit/models"
	"ninhub/internal/ratelimit/store/bucket"
	reghandler "ninhub/internal/registry/handler"
	regmodels "ninhub/internal/registry/models"
	regservice "ninhub/internal/registry/service"
	regstore "ninhub/internal/registry/store"
	httptransport "ninhub/internal/transport/http"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/audit/publishers/compliance"
	auditmemory "ninhub/pkg/platform/audit/store/memory"
	txcontext "ninhub/pkg/platform/tx"
	"ninhub/pkg/testutil"
)

var (
	ncraAdmin = domain.Actor{ID: "ncra-1", Role: domain.RoleNCRAAdmin}
	telecom   = domain.Actor{ID: "tel-1", Role: domain.RoleTelecomOfficer}
	banker    = domain.Actor{ID: "bank-1", Role: domain.RoleBankOfficer}
)

// RouterSuite drives the assembled router over in-memory stores.
type RouterSuite struct {
	suite.Suite
	router http.Handler
	tokens *jwttoken.JWTService
	cfg    httptransport.RouterConfig
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	log := logger.Discard()
	citizens := regstore.NewInMemory()
	blacklist := blstore.NewInMemory()
	linkages := linkstore.NewInMemory()
	runner := txcontext.NewShardedRunner(txcontext.DefaultTimeout)
	publisher := compliance.New(auditmemory.NewInMemoryStore())

	engine, err := fraud.New(citizens, blacklist, linkages, runner, publisher, fraud.WithLogger(log))
	s.Require().NoError(err)
	registry := regservice.New(citizens, linkages, runner, publisher, regservice.WithLogger(log))
	links := linkservice.New(linkages, engine, runner, publisher,
		linkservice.WithLogger(log), linkservice.WithCitizens(citizens))

	s.tokens = jwttoken.NewJWTService("router-test-key", "ninhub-test")
	s.cfg = httptransport.RouterConfig{
		Logger:  log,
		Metrics: metrics.New(prometheus.NewRegistry()),
		Tokens:  jwttoken.NewJWTServiceAdapter(s.tokens),
		Ops:     httptransport.NewOpsHandler(publisher, registry, links, engine, nil, log),
		Handlers: []httptransport.RouteRegistrar{
			reghandler.New(registry, log),
			linkhandler.NewTelecom(links, engine, log),
			linkhandler.NewBank(links, engine, log),
			blhandler.New(engine, log),
		},
		RateLimit: ratelimit.New(bucket.NewInMemoryBucketStore(), ratelimit.WithLogger(log)),
	}
	s.router = httptransport.NewRouter(s.cfg)
}

func (s *RouterSuite) do(actor domain.Actor, req *http.Request) *httptest.ResponseRecorder {
	token, err := s.tokens.GenerateAccessToken(actor, time.Hour)
	s.Require().NoError(err)
	return testutil.DoRequest(s.router, testutil.WithBearer(req, token))
}

func (s *RouterSuite) registerCitizen() string {
	rr := s.do(ncraAdmin, testutil.NewJSONRequest(s.T(), http.MethodPost, "/registry/citizens", map[string]string{
		"first_name":    "Mohamed",
		"last_name":     "Sesay",
		"date_of_birth": "1985-01-30",
		"gender":        "M",
		"address":       "Makeni",
	}))
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return string(testutil.UnmarshalResponse[regmodels.Citizen](s.T(), rr).NIN)
}

func (s *RouterSuite) TestPublicProbes() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "ok")
	s.NotEmpty(rr.Header().Get("X-Request-ID"))

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *RouterSuite) TestProtectedRoutesRequireToken() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/stats"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))

	req := testutil.WithBearer(testutil.NewRequest(s.T(), http.MethodGet, "/stats"), "not-a-token")
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

func (s *RouterSuite) TestCrossDomainFlow() {
	nin := s.registerCitizen()

	for _, phone := range []string{"072123456", "073123456"} {
		rr := s.do(telecom, testutil.NewJSONRequest(s.T(), http.MethodPost, "/telecom/sims", map[string]string{"nin": nin, "phone_number": phone}))
		s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr := s.do(telecom, testutil.NewJSONRequest(s.T(), http.MethodPost, "/telecom/sims", map[string]string{"nin": nin, "phone_number": "074123456"}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeCapExceeded))

	rr = s.do(telecom, testutil.NewJSONRequest(s.T(), http.MethodPost, "/telecom/evaluate", map[string]string{"nin": nin, "key": "074123456"}))
	testutil.AssertStatusOK(s.T(), rr)
	decision := testutil.UnmarshalResponse[fraud.Decision](s.T(), rr)
	s.Equal(dErrors.CodeCapExceeded, decision.Reason)

	rr = s.do(telecom, testutil.NewJSONRequest(s.T(), http.MethodPost, "/blacklist", map[string]string{"nin": nin, "reason": "sim box fraud"}))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	rr = s.do(banker, testutil.NewJSONRequest(s.T(), http.MethodPost, "/bank/accounts", map[string]any{"nin": nin, "account_type": "SAVINGS"}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeBlacklisted))

	rr = s.do(ncraAdmin, testutil.NewRequest(s.T(), http.MethodDelete, "/registry/citizens/"+nin))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeConflict))

	rr = s.do(ncraAdmin, testutil.NewRequest(s.T(), http.MethodGet, "/audit?limit=10"))
	testutil.AssertStatusOK(s.T(), rr)
	log := testutil.UnmarshalResponse[httptransport.AuditResponse](s.T(), rr)
	s.Require().Len(log.Entries, 4)
	s.Equal(audit.ActionBlacklistNIN, log.Entries[0].Action)
	s.Equal(audit.ActionRegisterCitizen, log.Entries[3].Action)

	rr = s.do(banker, testutil.NewRequest(s.T(), http.MethodGet, "/stats"))
	testutil.AssertStatusOK(s.T(), rr)
	stats := testutil.UnmarshalResponse[httptransport.StatsResponse](s.T(), rr)
	s.Equal(1, stats.Citizens)
	s.Equal(1, stats.ActiveBlacklist)
	s.Equal(2, stats.SIM.Total)
	s.Equal(0, stats.Bank.Total)
}

func (s *RouterSuite) TestAuditLogIsRestricted() {
	rr := s.do(telecom, testutil.NewRequest(s.T(), http.MethodGet, "/audit"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))

	rr = s.do(ncraAdmin, testutil.NewRequest(s.T(), http.MethodGet, "/audit?limit=0"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
}

func (s *RouterSuite) TestWriteBudgetPerActor() {
	t := s.T()
	s.cfg.RateLimit = ratelimit.New(bucket.NewInMemoryBucketStore(),
		ratelimit.WithLogger(logger.Discard()),
		ratelimit.WithLimits(map[ratelimitmodels.EndpointClass]ratelimitmodels.Limit{
			ratelimitmodels.ClassWrite: {RequestsPerWindow: 1, Window: time.Minute},
		}),
	)
	s.cfg.Metrics = metrics.New(prometheus.NewRegistry())
	s.router = httptransport.NewRouter(s.cfg)

	testutil.Given(t, "an officer who has spent the write budget", func(t *testing.T) {
		s.registerCitizen()

		testutil.When(t, "the officer writes again", func(t *testing.T) {
			rr := s.do(ncraAdmin, testutil.NewJSONRequest(t, http.MethodPost, "/registry/citizens", map[string]string{}))

			testutil.Then(t, "the request is throttled before validation", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
				testutil.AssertJSONContains(t, rr, "error", "rate_limit_exceeded")
				s.NotEmpty(rr.Header().Get("Retry-After"))
			})
		})

		testutil.When(t, "the officer reads", func(t *testing.T) {
			rr := s.do(ncraAdmin, testutil.NewRequest(t, http.MethodGet, "/registry/citizens"))

			testutil.Then(t, "the read budget is untouched", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				s.Equal("299", rr.Header().Get("X-RateLimit-Remaining"))
			})
		})

		testutil.When(t, "another officer writes", func(t *testing.T) {
			other := domain.Actor{ID: "ncra-2", Role: domain.RoleNCRAAdmin}
			rr := s.do(other, testutil.NewJSONRequest(t, http.MethodPost, "/registry/citizens", map[string]string{}))

			testutil.Then(t, "that officer has a budget of their own", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusBadRequest)
			})
		})
	})
}
