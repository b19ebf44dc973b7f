package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ninhub/pkg/domain"
)

// Action tags a mutation or sensitive read recorded in the audit log.
type Action string

const (
	// Telecom events
	ActionRegisterSIM     Action = "REGISTER_SIM"
	ActionUpdateSIMStatus Action = "UPDATE_SIM_STATUS"
	ActionDeleteSIM       Action = "DELETE_SIM"

	// Bank events
	ActionCreateAccount       Action = "CREATE_ACCOUNT"
	ActionUpdateAccountStatus Action = "UPDATE_ACCOUNT_STATUS"
	ActionDeleteAccount       Action = "DELETE_ACCOUNT"

	// Blacklist events
	ActionBlacklistNIN    Action = "BLACKLIST_NIN"
	ActionRemoveBlacklist Action = "REMOVE_BLACKLIST"

	// Registry events
	ActionRegisterCitizen Action = "REGISTER_CITIZEN"
	ActionUpdateCitizen   Action = "UPDATE_CITIZEN"
	ActionDeleteCitizen   Action = "DELETE_CITIZEN"
	ActionVerifyNIN       Action = "VERIFY_NIN"
)

func (a Action) String() string {
	return string(a)
}

// Entry is one append-only audit record. Entries are never updated or deleted.
type Entry struct {
	ID        uuid.UUID
	ActorID   domain.ActorID
	Action    Action
	Detail    string
	Timestamp time.Time
	RequestID string // Correlation ID from HTTP request context
}

// Store persists audit entries. Implementations must join the unit of work
// carried in ctx so an entry commits or rolls back with the change it records.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
