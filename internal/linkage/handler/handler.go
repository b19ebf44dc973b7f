package handler

import (
	"context"
	"iter"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"ninhub/internal/fraud"
	"ninhub/internal/linkage/models"
	"ninhub/internal/platform/middleware"
	"ninhub/internal/policy"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/httputil"
	"ninhub/pkg/requestcontext"
)

// Service defines the linkage operations exposed over HTTP.
type Service interface {
	RegisterSIM(ctx context.Context, actor domain.Actor, nin, phone string) (*models.Record, error)
	OpenAccount(ctx context.Context, actor domain.Actor, nin, accountType string, initialBalance int64) (*models.Record, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, d models.Domain, key, rawStatus string) (*models.Record, error)
	Delete(ctx context.Context, actor domain.Actor, d models.Domain, key string) error
	Get(ctx context.Context, d models.Domain, key string) (*models.Record, error)
	List(ctx context.Context, d models.Domain, query string) ([]*models.Listing, error)
	Analytics(ctx context.Context, d models.Domain) (*models.Stats, error)
}

// Engine defines the read-only fraud operations exposed over HTTP.
type Engine interface {
	EvaluateLinkage(ctx context.Context, nin string, d models.Domain, key string) (fraud.Decision, error)
	ComputeFraudSignal(ctx context.Context, rawNIN string, d models.Domain) (*fraud.FraudSignal, error)
	ScanAnomalies(ctx context.Context, d models.Domain) (iter.Seq[fraud.AnomalyAlert], error)
}

// routes binds one domain to its URL prefix and access-policy operations.
type routes struct {
	domain     models.Domain
	prefix     string
	collection string
	create     policy.Operation
	update     policy.Operation
	remove     policy.Operation
	list       policy.Operation
	evaluate   policy.Operation
	signal     policy.Operation
	anomalies  policy.Operation
	analytics  policy.Operation
}

var telecomRoutes = routes{
	domain:     models.DomainSIM,
	prefix:     "/telecom",
	collection: "/sims",
	create:     policy.OpRegisterSIM,
	update:     policy.OpUpdateSIMStatus,
	remove:     policy.OpDeleteSIM,
	list:       policy.OpListSIMs,
	evaluate:   policy.OpEvaluateSIM,
	signal:     policy.OpSIMFraudSignal,
	anomalies:  policy.OpSIMAnomalies,
	analytics:  policy.OpSIMAnalytics,
}

var bankRoutes = routes{
	domain:     models.DomainBank,
	prefix:     "/bank",
	collection: "/accounts",
	create:     policy.OpOpenAccount,
	update:     policy.OpUpdateAccountStatus,
	remove:     policy.OpDeleteAccount,
	list:       policy.OpListAccounts,
	evaluate:   policy.OpEvaluateAccount,
	signal:     policy.OpBankFraudSignal,
	anomalies:  policy.OpBankAnomalies,
	analytics:  policy.OpBankAnalytics,
}

// Handler wires one linkage domain's endpoints to the linkage service and
// the fraud engine.
type Handler struct {
	routes  routes
	service Service
	engine  Engine
	logger  *slog.Logger
}

// NewTelecom constructs the handler for the /telecom endpoints.
func NewTelecom(service Service, engine Engine, logger *slog.Logger) *Handler {
	return &Handler{routes: telecomRoutes, service: service, engine: engine, logger: logger}
}

// NewBank constructs the handler for the /bank endpoints.
func NewBank(service Service, engine Engine, logger *slog.Logger) *Handler {
	return &Handler{routes: bankRoutes, service: service, engine: engine, logger: logger}
}

// Register mounts the domain's endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	rt := h.routes
	guard := func(op policy.Operation) chi.Router {
		return r.With(middleware.RequireOperation(op, h.logger))
	}
	records := rt.prefix + rt.collection

	if rt.domain == models.DomainSIM {
		guard(rt.create).Post(records, h.HandleRegisterSIM)
	} else {
		guard(rt.create).Post(records, h.HandleOpenAccount)
	}
	guard(rt.list).Get(records, h.HandleList)
	guard(rt.list).Get(records+"/{key}", h.HandleGet)
	guard(rt.update).Patch(records+"/{key}/status", h.HandleUpdateStatus)
	guard(rt.remove).Delete(records+"/{key}", h.HandleDelete)
	guard(rt.evaluate).Post(rt.prefix+"/evaluate", h.HandleEvaluate)
	guard(rt.signal).Get(rt.prefix+"/fraud-signal/{nin}", h.HandleFraudSignal)
	guard(rt.anomalies).Get(rt.prefix+"/anomalies", h.HandleAnomalies)
	guard(rt.analytics).Get(rt.prefix+"/analytics", h.HandleAnalytics)
}

// HandleRegisterSIM handles POST /telecom/sims.
func (h *Handler) HandleRegisterSIM(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := requestcontext.Actor(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RegisterSIMRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.RegisterSIM(ctx, actor, req.NIN, req.PhoneNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "sim registration rejected",
			"request_id", requestID,
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sim registered",
		"request_id", requestID,
		"actor_id", actor.ID,
		"nin", record.NIN,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, record)
}

// HandleOpenAccount handles POST /bank/accounts. The account number is
// issued by the service.
func (h *Handler) HandleOpenAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := requestcontext.Actor(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[OpenAccountRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.OpenAccount(ctx, actor, req.NIN, req.AccountType, req.InitialBalance)
	if err != nil {
		h.logger.WarnContext(ctx, "account opening rejected",
			"request_id", requestID,
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "account opened",
		"request_id", requestID,
		"actor_id", actor.ID,
		"nin", record.NIN,
		"account_type", record.AccountType,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, record)
}

// HandleList handles GET .../sims and .../accounts. The optional q parameter
// filters by key or NIN substring.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := h.routes.domain

	records, err := h.service.List(ctx, d, r.URL.Query().Get("q"))
	if err != nil {
		h.logError(ctx, "failed to list linkages", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(d, records))
}

// HandleGet handles GET .../{key}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	record, err := h.service.Get(ctx, h.routes.domain, chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleUpdateStatus handles PATCH .../{key}/status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := requestcontext.Actor(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.UpdateStatus(ctx, actor, h.routes.domain, chi.URLParam(r, "key"), req.Status)
	if err != nil {
		h.logError(ctx, "linkage status update failed", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "linkage status updated",
		"request_id", requestID,
		"actor_id", actor.ID,
		"domain", record.Domain,
		"status", record.Status,
	)
	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleDelete handles DELETE .../{key}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)
	key := chi.URLParam(r, "key")

	if err := h.service.Delete(ctx, actor, h.routes.domain, key); err != nil {
		h.logError(ctx, "linkage deletion failed", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "linkage deleted",
		"request_id", requestcontext.RequestID(ctx),
		"actor_id", actor.ID,
		"domain", h.routes.domain,
	)
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{Domain: h.routes.domain, Key: key, Deleted: true})
}

// HandleEvaluate handles POST .../evaluate. Rejections are part of the
// response body, not an HTTP error: the evaluation itself succeeded.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	// Key format belongs to the domain; the engine only bounds its length.
	key, err := models.ValidateKey(h.routes.domain, req.Key)
	if err != nil {
		httputil.WriteJSON(w, http.StatusOK, invalidKeyDecision(ctx, h.routes.domain, req, err))
		return
	}

	decision, err := h.engine.EvaluateLinkage(ctx, req.NIN, h.routes.domain, key)
	if err != nil {
		h.logError(ctx, "linkage evaluation failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, decision)
}

func invalidKeyDecision(ctx context.Context, d models.Domain, req *EvaluateRequest, err error) fraud.Decision {
	nin, parseErr := domain.ParseNIN(req.NIN)
	if parseErr != nil {
		nin = domain.NIN(req.NIN)
	}
	return fraud.Decision{
		Outcome:     fraud.OutcomeRejected,
		Reason:      dErrors.CodeInvalidInput,
		Detail:      dErrors.MessageOf(err),
		Domain:      d,
		NIN:         nin,
		Key:         req.Key,
		EvaluatedAt: requestcontext.Now(ctx),
	}
}

// HandleFraudSignal handles GET .../fraud-signal/{nin}.
func (h *Handler) HandleFraudSignal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	signal, err := h.engine.ComputeFraudSignal(ctx, chi.URLParam(r, "nin"), h.routes.domain)
	if err != nil {
		h.logError(ctx, "fraud signal failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, signal)
}

// HandleAnomalies handles GET .../anomalies.
func (h *Handler) HandleAnomalies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := h.routes.domain

	alerts, err := h.engine.ScanAnomalies(ctx, d)
	if err != nil {
		h.logError(ctx, "anomaly scan failed", err)
		httputil.WriteError(w, err)
		return
	}

	report := AnomalyReport{Domain: d, Alerts: slices.Collect(alerts)}
	if report.Alerts == nil {
		report.Alerts = []fraud.AnomalyAlert{}
	}
	report.Count = len(report.Alerts)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleAnalytics handles GET .../analytics.
func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.service.Analytics(ctx, h.routes.domain)
	if err != nil {
		h.logError(ctx, "analytics failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"domain", h.routes.domain,
		"error", err,
	)
}
