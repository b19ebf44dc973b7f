package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
)

// Status is the lifecycle state of a blacklist entry.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusRemoved Status = "REMOVED"
)

// transitions lists the allowed moves out of each state. REMOVED is terminal:
// re-blacklisting a NIN creates a new entry.
var transitions = map[Status][]Status{
	StatusActive: {StatusRemoved},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusRemoved
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// maxReasonLength bounds free-text reasons.
const maxReasonLength = 500

// Entry is one blacklisting of a NIN.
//
// Invariants:
//   - At most one ACTIVE entry exists per NIN at any time
//   - Reason is non-empty
//   - RemovedAt and RemovedBy are set exactly when Status is REMOVED
type Entry struct {
	ID        uuid.UUID      `json:"id"`
	NIN       domain.NIN     `json:"nin"`
	Reason    string         `json:"reason"`
	AddedBy   domain.ActorID `json:"added_by"`
	Status    Status         `json:"status"`
	AddedAt   time.Time      `json:"added_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	RemovedAt *time.Time     `json:"removed_at,omitempty"`
	RemovedBy domain.ActorID `json:"removed_by,omitempty"`
}

// NewEntry builds an ACTIVE entry.
func NewEntry(nin domain.NIN, reason string, actor domain.ActorID, now time.Time) (*Entry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "reason is required")
	}
	if len(reason) > maxReasonLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "reason must be at most 500 characters")
	}
	return &Entry{
		ID:        uuid.New(),
		NIN:       nin,
		Reason:    reason,
		AddedBy:   actor,
		Status:    StatusActive,
		AddedAt:   now,
		UpdatedAt: now,
	}, nil
}

func (e *Entry) IsActive() bool {
	return e.Status == StatusActive
}

// CanRemove checks if the entry can transition to REMOVED.
func (e *Entry) CanRemove() error {
	if !e.Status.CanTransitionTo(StatusRemoved) {
		return dErrors.New(dErrors.CodeInvariantViolation, "blacklist entry is not active")
	}
	return nil
}

// Remove validates and applies ACTIVE -> REMOVED.
func (e *Entry) Remove(actor domain.ActorID, now time.Time) error {
	if err := e.CanRemove(); err != nil {
		return err
	}
	e.Status = StatusRemoved
	e.UpdatedAt = now
	e.RemovedAt = &now
	e.RemovedBy = actor
	return nil
}
