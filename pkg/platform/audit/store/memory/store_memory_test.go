package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "ninhub/pkg/platform/audit"
	txcontext "ninhub/pkg/platform/tx"
)

func TestListRecentNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 3 {
		require.NoError(t, store.Append(ctx, audit.Entry{
			ID:        uuid.New(),
			Action:    audit.ActionRegisterSIM,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, base.Add(2*time.Minute), got[0].Timestamp)
	assert.Equal(t, base.Add(time.Minute), got[1].Timestamp)
}

func TestListRecentTiesKeepAppendOrder(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, action := range []audit.Action{audit.ActionBlacklistNIN, audit.ActionRemoveBlacklist} {
		require.NoError(t, store.Append(ctx, audit.Entry{ID: uuid.New(), Action: action, Timestamp: at}))
	}

	got, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, audit.ActionRemoveBlacklist, got[0].Action)
}

func TestAppendRollsBackWithUnit(t *testing.T) {
	store := NewInMemoryStore()
	runner := txcontext.NewShardedRunner(time.Second)

	err := runner.RunInTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, store.Append(ctx, audit.Entry{ID: uuid.New(), Action: audit.ActionBlacklistNIN}))
		return errors.New("later step failed")
	})
	require.Error(t, err)

	got, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
