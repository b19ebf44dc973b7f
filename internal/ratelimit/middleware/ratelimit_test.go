package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ninhub/internal/ratelimit/models"
	"ninhub/internal/ratelimit/store/bucket"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/circuit"
	"ninhub/pkg/testutil"
)

// flakyStore fails while failing is set and delegates otherwise.
type flakyStore struct {
	inner   BucketStore
	failing bool
	calls   int
}

func (f *flakyStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	f.calls++
	if f.failing {
		return nil, errors.New("connection refused")
	}
	return f.inner.Allow(ctx, key, limit, window)
}

type RateLimitMiddlewareSuite struct {
	suite.Suite
	primary  *flakyStore
	fallback *bucket.InMemoryBucketStore
	reached  int
}

func TestRateLimitMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(RateLimitMiddlewareSuite))
}

func (s *RateLimitMiddlewareSuite) SetupTest() {
	s.primary = &flakyStore{inner: bucket.NewInMemoryBucketStore()}
	s.fallback = bucket.NewInMemoryBucketStore()
	s.reached = 0
}

func (s *RateLimitMiddlewareSuite) handler(mw *Middleware) http.Handler {
	return mw.LimitActor(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.reached++
		w.WriteHeader(http.StatusOK)
	}))
}

func (s *RateLimitMiddlewareSuite) request(method string) *http.Request {
	req := testutil.NewRequest(s.T(), method, "/registry/citizens")
	return testutil.WithActor(req, "officer-1", domain.RoleNCRAAdmin)
}

func smallLimits() map[models.EndpointClass]models.Limit {
	return map[models.EndpointClass]models.Limit{
		models.ClassRead:  {RequestsPerWindow: 3, Window: time.Minute},
		models.ClassWrite: {RequestsPerWindow: 1, Window: time.Minute},
	}
}

func (s *RateLimitMiddlewareSuite) TestBudgetEnforced() {
	h := s.handler(New(s.primary, WithLimits(smallLimits())))

	s.Run("requests within budget carry limit headers", func() {
		rr := testutil.DoRequest(h, s.request(http.MethodGet))
		testutil.AssertStatusOK(s.T(), rr)
		s.Equal("3", rr.Header().Get("X-RateLimit-Limit"))
		s.Equal("2", rr.Header().Get("X-RateLimit-Remaining"))
		s.NotEmpty(rr.Header().Get("X-RateLimit-Reset"))
		s.Empty(rr.Header().Get(StatusHeader))
	})

	s.Run("write budget is separate from read budget", func() {
		rr := testutil.DoRequest(h, s.request(http.MethodPost))
		testutil.AssertStatusOK(s.T(), rr)

		rr = testutil.DoRequest(h, s.request(http.MethodPost))
		testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)
		s.NotEmpty(rr.Header().Get("Retry-After"))
		testutil.AssertJSONContains(s.T(), rr, "error", "rate_limit_exceeded")
	})

	s.Run("exhausted read budget is rejected", func() {
		testutil.DoRequest(h, s.request(http.MethodGet))
		testutil.DoRequest(h, s.request(http.MethodGet))
		rr := testutil.DoRequest(h, s.request(http.MethodGet))
		testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)
	})

	s.Equal(4, s.reached)
}

func (s *RateLimitMiddlewareSuite) TestFailOpenWithoutFallback() {
	s.primary.failing = true
	h := s.handler(New(s.primary, WithLimits(smallLimits())))

	for range 5 {
		rr := testutil.DoRequest(h, s.request(http.MethodPost))
		testutil.AssertStatusOK(s.T(), rr)
		s.Empty(rr.Header().Get("X-RateLimit-Limit"))
	}
	s.Equal(5, s.reached)
}

func (s *RateLimitMiddlewareSuite) TestFallbackWhileCircuitOpen() {
	t := s.T()
	breaker := circuit.New("test", circuit.WithFailureThreshold(1), circuit.WithSuccessThreshold(2))
	h := s.handler(New(s.primary,
		WithFallback(s.fallback),
		WithBreaker(breaker),
		WithLimits(smallLimits()),
	))

	testutil.Given(t, "the primary store is down", func(t *testing.T) {
		s.primary.failing = true
	})

	testutil.When(t, "a write arrives", func(t *testing.T) {
		rr := testutil.DoRequest(h, s.request(http.MethodPost))

		testutil.Then(t, "the fallback budgets it and the response is marked degraded", func(t *testing.T) {
			testutil.AssertStatusOK(t, rr)
			s.Equal("degraded", rr.Header().Get(StatusHeader))
			s.True(breaker.IsOpen())
		})
	})

	testutil.When(t, "the fallback budget is spent", func(t *testing.T) {
		rr := testutil.DoRequest(h, s.request(http.MethodPost))

		testutil.Then(t, "the request is rejected", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
		})
	})

	testutil.When(t, "the primary recovers", func(t *testing.T) {
		s.primary.failing = false
		first := testutil.DoRequest(h, s.request(http.MethodGet))
		second := testutil.DoRequest(h, s.request(http.MethodGet))

		testutil.Then(t, "the circuit closes after enough successes", func(t *testing.T) {
			s.Equal("degraded", first.Header().Get(StatusHeader))
			s.Empty(second.Header().Get(StatusHeader))
			s.False(breaker.IsOpen())
		})
	})
}

func (s *RateLimitMiddlewareSuite) TestDisabledPassesThrough() {
	h := s.handler(New(s.primary, WithLimits(smallLimits()), WithDisabled(true)))

	for range 3 {
		rr := testutil.DoRequest(h, s.request(http.MethodDelete))
		testutil.AssertStatusOK(s.T(), rr)
	}
	s.Zero(s.primary.calls)
	s.Equal(3, s.reached)
}
