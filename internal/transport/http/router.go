// Package httptransport assembles the HTTP surface: shared middleware, the
// public probes and the authenticated domain routes.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ninhub/internal/platform/metrics"
	ratelimit "ninhub/internal/ratelimit/middleware"
	"ninhub/pkg/platform/middleware/auth"
	"ninhub/pkg/platform/middleware/request"
	"ninhub/pkg/platform/middleware/requesttime"
)

// RouteRegistrar mounts a group of endpoints. Domain handlers gate each of
// their routes with the access policy themselves.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Tokens   auth.TokenValidator
	Ops      *OpsHandler
	Handlers []RouteRegistrar
	// RateLimit is optional; nil leaves authenticated routes unbudgeted.
	RateLimit *ratelimit.Middleware
}

// NewRouter builds the chi router. /healthz and /metrics are public; every
// other route requires a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(cfg.Logger))
	r.Use(cfg.Metrics.Middleware)

	r.Get("/healthz", cfg.Ops.HandleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Tokens, cfg.Logger))
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit.LimitActor)
		}
		for _, h := range cfg.Handlers {
			h.Register(r)
		}
		cfg.Ops.Register(r)
	})
	return r
}
