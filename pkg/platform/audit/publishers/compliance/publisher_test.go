package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/audit/store/memory"
	"ninhub/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Entry) error {
	return errors.New("disk full")
}

func (failingStore) ListRecent(context.Context, int) ([]audit.Entry, error) {
	return nil, nil
}

func TestEmitFillsMetadata(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := New(store)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(requestcontext.WithRequestID(context.Background(), "req-1"), now)

	require.NoError(t, pub.Emit(ctx, audit.Entry{
		ActorID: "officer-1",
		Action:  audit.ActionRegisterSIM,
		Detail:  "Registered SIM: 072123456",
	}))

	got, err := pub.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, now, got[0].Timestamp)
	assert.Equal(t, "req-1", got[0].RequestID)
}

func TestEmitRejectsIncompleteEntries(t *testing.T) {
	pub := New(memory.NewInMemoryStore())

	err := pub.Emit(context.Background(), audit.Entry{Action: audit.ActionRegisterSIM})
	assert.ErrorIs(t, err, errMissingActor)

	err = pub.Emit(context.Background(), audit.Entry{ActorID: "officer-1"})
	assert.ErrorIs(t, err, errMissingAction)
}

func TestEmitFailsClosed(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	pub := New(failingStore{}, WithMetrics(metrics))

	err := pub.Emit(context.Background(), audit.Entry{ActorID: "officer-1", Action: audit.ActionBlacklistNIN})
	require.Error(t, err)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.PersistFailures), 0)
}
