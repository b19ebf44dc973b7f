package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ninhub/pkg/domain-errors"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusActive.CanTransitionTo(StatusRemoved))
	assert.False(t, StatusRemoved.CanTransitionTo(StatusActive))
	assert.False(t, StatusRemoved.CanTransitionTo(StatusRemoved))
	assert.False(t, StatusActive.CanTransitionTo(StatusActive))
	assert.False(t, Status("FROZEN").IsValid())
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	e, err := NewEntry("SL26000001", "  SIM fraud ring ", "officer-1", now)
	require.NoError(t, err)
	assert.Equal(t, "SIM fraud ring", e.Reason)
	assert.True(t, e.IsActive())
	assert.Nil(t, e.RemovedAt)

	_, err = NewEntry("SL26000001", " ", "officer-1", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = NewEntry("SL26000001", strings.Repeat("x", 501), "officer-1", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestRemove(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	e, err := NewEntry("SL26000001", "fraud", "officer-1", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, e.Remove("admin-1", later))
	assert.Equal(t, StatusRemoved, e.Status)
	require.NotNil(t, e.RemovedAt)
	assert.Equal(t, later, *e.RemovedAt)

	err = e.Remove("admin-1", later)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
