package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	blmodels "ninhub/internal/blacklist/models"
	linkmodels "ninhub/internal/linkage/models"
	"ninhub/internal/platform/middleware"
	"ninhub/internal/policy"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/httputil"
	"ninhub/pkg/requestcontext"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
	healthTimeout     = 2 * time.Second
)

// AuditReader reads the newest audit entries.
type AuditReader interface {
	Recent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// CitizenCounter counts registered citizens.
type CitizenCounter interface {
	Count(ctx context.Context) (int, error)
}

// LinkageAnalytics summarises one linkage domain.
type LinkageAnalytics interface {
	Analytics(ctx context.Context, d linkmodels.Domain) (*linkmodels.Stats, error)
}

// BlacklistLister lists active blacklist entries.
type BlacklistLister interface {
	ListBlacklist(ctx context.Context) ([]*blmodels.Entry, error)
}

// HealthCheck reports whether one backing service is reachable.
type HealthCheck func(ctx context.Context) error

// OpsHandler serves the audit log, the dashboard statistics and the health probe.
type OpsHandler struct {
	audit     AuditReader
	citizens  CitizenCounter
	linkages  LinkageAnalytics
	blacklist BlacklistLister
	checks    map[string]HealthCheck
	logger    *slog.Logger
}

// NewOpsHandler constructs the handler. checks may be nil when running on
// in-memory stores.
func NewOpsHandler(
	auditReader AuditReader,
	citizens CitizenCounter,
	linkages LinkageAnalytics,
	blacklist BlacklistLister,
	checks map[string]HealthCheck,
	logger *slog.Logger,
) *OpsHandler {
	return &OpsHandler{
		audit:     auditReader,
		citizens:  citizens,
		linkages:  linkages,
		blacklist: blacklist,
		checks:    checks,
		logger:    logger,
	}
}

// StatsResponse is the HTTP response for GET /stats.
type StatsResponse struct {
	Citizens        int               `json:"citizens"`
	ActiveBlacklist int               `json:"active_blacklist"`
	SIM             *linkmodels.Stats `json:"sim"`
	Bank            *linkmodels.Stats `json:"bank"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// AuditResponse is the HTTP response for GET /audit.
type AuditResponse struct {
	Entries []audit.Entry `json:"entries"`
	Count   int           `json:"count"`
}

// HealthResponse is the HTTP response for GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Register mounts the authenticated audit and stats endpoints.
func (h *OpsHandler) Register(r chi.Router) {
	r.With(middleware.RequireOperation(policy.OpReadAuditLog, h.logger)).Get("/audit", h.HandleAudit)
	r.With(middleware.RequireOperation(policy.OpViewStats, h.logger)).Get("/stats", h.HandleStats)
}

// HandleAudit handles GET /audit?limit=N, newest entries first.
func (h *OpsHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be between 1 and 1000"))
			return
		}
		limit = n
	}

	entries, err := h.audit.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read audit log",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeStorageFailure, "audit log read failed"))
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, AuditResponse{Entries: entries, Count: len(entries)})
}

// HandleStats handles GET /stats. The four aggregates are read concurrently.
func (h *OpsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := StatsResponse{GeneratedAt: requestcontext.Now(ctx)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := h.citizens.Count(gctx)
		resp.Citizens = n
		return err
	})
	g.Go(func() error {
		entries, err := h.blacklist.ListBlacklist(gctx)
		resp.ActiveBlacklist = len(entries)
		return err
	})
	g.Go(func() error {
		stats, err := h.linkages.Analytics(gctx, linkmodels.DomainSIM)
		resp.SIM = stats
		return err
	})
	g.Go(func() error {
		stats, err := h.linkages.Analytics(gctx, linkmodels.DomainBank)
		resp.Bank = stats
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(ctx, "failed to compute stats",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleHealth handles GET /healthz. Any failing check yields 503.
func (h *OpsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}
