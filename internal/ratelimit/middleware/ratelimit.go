package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ninhub/internal/ratelimit/metrics"
	"ninhub/internal/ratelimit/models"
	"ninhub/pkg/platform/circuit"
	"ninhub/pkg/platform/httputil"
	"ninhub/pkg/requestcontext"
)

// StatusHeader is set to "degraded" while the fallback store is in use.
const StatusHeader = "X-RateLimit-Status"

// BucketStore checks and records one request against a sliding window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

// Middleware enforces per-actor request budgets. With a fallback configured,
// repeated primary failures open the circuit and budgets are served from the
// fallback until the primary recovers; without one, store errors fail open.
type Middleware struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	limits   map[models.EndpointClass]models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

func WithFallback(store BucketStore) Option {
	return func(m *Middleware) {
		m.fallback = store
	}
}

func WithLimits(limits map[models.EndpointClass]models.Limit) Option {
	return func(m *Middleware) {
		for class, l := range limits {
			if l.RequestsPerWindow > 0 && l.Window > 0 {
				m.limits[class] = l
			}
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = metrics
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(m *Middleware) {
		if b != nil {
			m.breaker = b
		}
	}
}

// WithDisabled turns the limiter into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(primary BucketStore, opts ...Option) *Middleware {
	m := &Middleware{
		primary: primary,
		breaker: circuit.New("ratelimit"),
		limits:  models.DefaultLimits(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		m.logger.Info("rate limiting disabled")
	}
	return m
}

// LimitActor budgets requests per authenticated actor and endpoint class. It
// must run after the auth middleware.
func (m *Middleware) LimitActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		actor := requestcontext.Actor(ctx)
		class := models.ClassFor(r.Method)
		limit := m.limits[class]

		result, degraded, err := m.check(ctx, models.ActorKey(actor.ID.String(), class), limit)
		if err != nil {
			m.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result, degraded)
		m.metrics.IncrementDecision(string(class), result.Allowed)
		if !result.Allowed {
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"actor_id", actor.ID,
				"class", class,
			)
			writeRateLimitExceeded(w, result)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) check(ctx context.Context, key string, limit models.Limit) (*models.RateLimitResult, bool, error) {
	result, err := m.primary.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	if err != nil {
		m.metrics.IncrementStoreFailures()
		_, change := m.breaker.RecordFailure()
		if change.Opened {
			m.logger.WarnContext(ctx, "rate limit circuit opened", "breaker", m.breaker.Name(), "error", err)
			m.metrics.SetDegraded(true)
		}
		if m.fallback == nil {
			return nil, false, err
		}
		result, err = m.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
		return result, true, err
	}

	usePrimary, change := m.breaker.RecordSuccess()
	if change.Closed {
		m.logger.InfoContext(ctx, "rate limit circuit closed", "breaker", m.breaker.Name())
		m.metrics.SetDegraded(false)
	}
	if !usePrimary && m.fallback != nil {
		result, err = m.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
		return result, true, err
	}
	return result, false, nil
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult, degraded bool) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if degraded {
		w.Header().Set(StatusHeader, "degraded")
	}
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "You have exceeded your request budget for this operation class.",
		RetryAfter: result.RetryAfter,
	})
}
