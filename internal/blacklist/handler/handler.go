package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ninhub/internal/blacklist/models"
	"ninhub/internal/platform/middleware"
	"ninhub/internal/policy"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/httputil"
	"ninhub/pkg/requestcontext"
)

// Service defines the blacklist ledger operations exposed over HTTP.
type Service interface {
	AddToBlacklist(ctx context.Context, actor domain.Actor, rawNIN, reason string) (*models.Entry, error)
	RemoveFromBlacklist(ctx context.Context, actor domain.Actor, rawNIN string) (*models.Entry, error)
	ListBlacklist(ctx context.Context) ([]*models.Entry, error)
	BlacklistHistory(ctx context.Context, rawNIN string) ([]*models.Entry, error)
}

// Handler wires blacklist endpoints to the fraud engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a blacklist handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// EntryListResponse wraps a list of blacklist entries.
type EntryListResponse struct {
	Entries []*models.Entry `json:"entries"`
	Count   int             `json:"count"`
}

// Register mounts blacklist endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.With(middleware.RequireOperation(policy.OpBlacklistAdd, h.logger)).Post("/blacklist", h.HandleAdd)
	r.With(middleware.RequireOperation(policy.OpBlacklistList, h.logger)).Get("/blacklist", h.HandleList)
	r.With(middleware.RequireOperation(policy.OpBlacklistRemove, h.logger)).Delete("/blacklist/{nin}", h.HandleRemove)
	r.With(middleware.RequireOperation(policy.OpBlacklistHistory, h.logger)).Get("/blacklist/{nin}/history", h.HandleHistory)
}

// HandleAdd handles POST /blacklist.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := requestcontext.Actor(ctx)

	req, ok := httputil.DecodeAndPrepare[AddRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	entry, err := h.service.AddToBlacklist(ctx, actor, req.NIN, req.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "blacklist add failed",
			"request_id", requestID,
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// HandleRemove handles DELETE /blacklist/{nin}. The entry is kept as
// REMOVED history; linkages of the NIN are untouched.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.Actor(ctx)

	entry, err := h.service.RemoveFromBlacklist(ctx, actor, chi.URLParam(r, "nin"))
	if err != nil {
		h.logger.WarnContext(ctx, "blacklist removal failed",
			"request_id", requestcontext.RequestID(ctx),
			"actor_id", actor.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

// HandleList handles GET /blacklist: active entries only.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListBlacklist(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(entries))
}

// HandleHistory handles GET /blacklist/{nin}/history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.BlacklistHistory(r.Context(), chi.URLParam(r, "nin"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(entries))
}

func toListResponse(entries []*models.Entry) EntryListResponse {
	if entries == nil {
		entries = []*models.Entry{}
	}
	return EntryListResponse{Entries: entries, Count: len(entries)}
}
