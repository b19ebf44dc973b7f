package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ninhub/internal/blacklist/handler/mocks"
	"ninhub/internal/blacklist/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, svc
}

func activeEntry() *models.Entry {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Entry{
		ID:        uuid.New(),
		NIN:       "SL25123456",
		Reason:    "identity fraud",
		AddedBy:   "tel-1",
		Status:    models.StatusActive,
		AddedAt:   now,
		UpdatedAt: now,
	}
}

func TestHandleAdd(t *testing.T) {
	officer := domain.Actor{ID: "tel-1", Role: domain.RoleTelecomOfficer}

	t.Run("telecom officer blacklists a nin - 201", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().AddToBlacklist(gomock.Any(), officer, "SL25123456", "identity fraud").Return(activeEntry(), nil)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/blacklist", map[string]string{"nin": "SL25123456", "reason": " identity fraud "})
		rr := testutil.DoRequest(router, testutil.WithActor(req, "tel-1", domain.RoleTelecomOfficer))

		testutil.AssertStatus(t, rr, http.StatusCreated)
		testutil.AssertJSONContains(t, rr, "status", "ACTIVE")
	})

	t.Run("already blacklisted - 409", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().AddToBlacklist(gomock.Any(), officer, "SL25123456", "again").
			Return(nil, dErrors.New(dErrors.CodeAlreadyBlacklisted, "nin is already blacklisted"))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/blacklist", map[string]string{"nin": "SL25123456", "reason": "again"})
		rr := testutil.DoRequest(router, testutil.WithActor(req, "tel-1", domain.RoleTelecomOfficer))

		testutil.AssertStatusAndError(t, rr, http.StatusConflict, string(dErrors.CodeAlreadyBlacklisted))
	})

	t.Run("missing reason - 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/blacklist", map[string]string{"nin": "SL25123456"})
		rr := testutil.DoRequest(router, testutil.WithActor(req, "tel-1", domain.RoleTelecomOfficer))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	t.Run("bank officer may not blacklist - 403", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/blacklist", map[string]string{"nin": "SL25123456", "reason": "x"})
		rr := testutil.DoRequest(router, testutil.WithActor(req, "bank-1", domain.RoleBankOfficer))

		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, string(dErrors.CodeForbidden))
	})
}

func TestHandleRemove(t *testing.T) {
	t.Run("removes the active entry - 200", func(t *testing.T) {
		router, svc := newTestRouter(t)
		removed := activeEntry()
		require.NoError(t, removed.Remove("ncra-1", removed.AddedAt.Add(time.Hour)))
		svc.EXPECT().RemoveFromBlacklist(gomock.Any(), gomock.Any(), "SL25123456").Return(removed, nil)

		req := testutil.NewRequest(t, http.MethodDelete, "/blacklist/SL25123456")
		rr := testutil.DoRequest(router, testutil.WithActor(req, "ncra-1", domain.RoleNCRAAdmin))

		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "REMOVED")
	})

	t.Run("not blacklisted - 404", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().RemoveFromBlacklist(gomock.Any(), gomock.Any(), "SL25123456").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "nin is not blacklisted"))

		req := testutil.NewRequest(t, http.MethodDelete, "/blacklist/SL25123456")
		rr := testutil.DoRequest(router, testutil.WithActor(req, "ncra-1", domain.RoleNCRAAdmin))

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}

func TestHandleListAndHistory(t *testing.T) {
	t.Run("bank officers may read the list", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().ListBlacklist(gomock.Any()).Return([]*models.Entry{activeEntry()}, nil)

		rr := testutil.DoRequest(router, testutil.WithActor(testutil.NewRequest(t, http.MethodGet, "/blacklist"), "bank-1", domain.RoleBankOfficer))

		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[EntryListResponse](t, rr)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("history of a never blacklisted nin is empty", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().BlacklistHistory(gomock.Any(), "SL25000001").Return(nil, nil)

		rr := testutil.DoRequest(router, testutil.WithActor(testutil.NewRequest(t, http.MethodGet, "/blacklist/SL25000001/history"), "su-1", domain.RoleSuperAdmin))

		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[EntryListResponse](t, rr)
		assert.NotNil(t, resp.Entries)
		assert.Zero(t, resp.Count)
	})
}
