package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ninhub/internal/platform/middleware"
	"ninhub/internal/policy"
	"ninhub/internal/registry/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/httputil"
	"ninhub/pkg/requestcontext"
)

// Service defines the registry operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, actor domain.Actor, details models.Details) (*models.Citizen, error)
	Update(ctx context.Context, actor domain.Actor, rawNIN string, details models.Details) (*models.Citizen, error)
	Delete(ctx context.Context, actor domain.Actor, rawNIN string) error
	Verify(ctx context.Context, actor domain.Actor, rawNIN string) (*models.Citizen, error)
	List(ctx context.Context) ([]*models.Citizen, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router. Each route is gated by
// its access-policy operation.
func (h *Handler) Register(r chi.Router) {
	r.With(middleware.RequireOperation(policy.OpRegisterCitizen, h.logger)).Post("/registry/citizens", h.HandleRegister)
	r.With(middleware.RequireOperation(policy.OpListCitizens, h.logger)).Get("/registry/citizens", h.HandleList)
	r.With(middleware.RequireOperation(policy.OpVerifyNIN, h.logger)).Get("/registry/citizens/{nin}", h.HandleVerify)
	r.With(middleware.RequireOperation(policy.OpUpdateCitizen, h.logger)).Put("/registry/citizens/{nin}", h.HandleUpdate)
	r.With(middleware.RequireOperation(policy.OpDeleteCitizen, h.logger)).Delete("/registry/citizens/{nin}", h.HandleDelete)
}

// HandleRegister handles POST /registry/citizens.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := requestcontext.Actor(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CitizenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	citizen, err := h.service.Register(ctx, actor, req.Details())
	if err != nil {
		h.logger.ErrorContext(ctx, "citizen registration failed",
			"request_id", requestID,
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "citizen registered",
		"request_id", requestID,
		"actor_id", actor.ID,
		"nin", citizen.NIN,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, citizen)
}

// HandleList handles GET /registry/citizens.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	citizens, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list citizens",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(citizens))
}

// HandleVerify handles GET /registry/citizens/{nin}. Every lookup is audited
// as a NIN verification.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)
	nin := chi.URLParam(r, "nin")

	citizen, err := h.service.Verify(ctx, actor, nin)
	if err != nil {
		h.logger.WarnContext(ctx, "nin verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, citizen)
}

// HandleUpdate handles PUT /registry/citizens/{nin}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := requestcontext.Actor(ctx)

	req, ok := httputil.DecodeAndPrepare[CitizenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	citizen, err := h.service.Update(ctx, actor, chi.URLParam(r, "nin"), req.Details())
	if err != nil {
		h.logger.ErrorContext(ctx, "citizen update failed",
			"request_id", requestID,
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "citizen updated",
		"request_id", requestID,
		"actor_id", actor.ID,
		"nin", citizen.NIN,
	)
	httputil.WriteJSON(w, http.StatusOK, citizen)
}

// HandleDelete handles DELETE /registry/citizens/{nin}. Citizens that still
// hold linkages in any domain cannot be deleted.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := requestcontext.Actor(ctx)
	nin := chi.URLParam(r, "nin")

	if err := h.service.Delete(ctx, actor, nin); err != nil {
		h.logger.ErrorContext(ctx, "citizen deletion failed",
			"request_id", requestID,
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "citizen deleted",
		"request_id", requestID,
		"actor_id", actor.ID,
		"nin", nin,
	)
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{NIN: nin, Deleted: true})
}
