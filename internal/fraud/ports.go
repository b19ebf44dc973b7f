package fraud

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	blmodels "ninhub/internal/blacklist/models"
	"ninhub/internal/linkage/models"
	regmodels "ninhub/internal/registry/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/audit"
)

// CitizenReader looks up identity records. FindByNIN returns
// sentinel.ErrNotFound when the NIN was never issued.
type CitizenReader interface {
	FindByNIN(ctx context.Context, nin domain.NIN) (*regmodels.Citizen, error)
}

// BlacklistStore is the blacklist ledger. FindActive returns
// sentinel.ErrNotFound when the NIN has no ACTIVE entry; Insert returns
// sentinel.ErrConflict when it already has one.
type BlacklistStore interface {
	FindActive(ctx context.Context, nin domain.NIN) (*blmodels.Entry, error)
	Insert(ctx context.Context, entry *blmodels.Entry) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to blmodels.Status, actor domain.ActorID, now time.Time) error
	ListActive(ctx context.Context) ([]*blmodels.Entry, error)
	ListByNIN(ctx context.Context, nin domain.NIN) ([]*blmodels.Entry, error)
}

// LinkageStore holds SIM and BANK linkages. Insert returns
// sentinel.ErrConflict when (domain, key) is taken.
type LinkageStore interface {
	CountByNIN(ctx context.Context, d models.Domain, nin domain.NIN) (int, error)
	FindByKey(ctx context.Context, d models.Domain, key string) (*models.Record, error)
	Insert(ctx context.Context, record *models.Record) error
	Summaries(ctx context.Context, d models.Domain, since time.Time) ([]models.Summary, error)
}

// AuditPublisher appends audit entries inside the caller's unit of work.
type AuditPublisher interface {
	Emit(ctx context.Context, entry audit.Entry) error
}

// SignalCache memoises linkage counts for advisory fraud signals. It is never
// consulted on the admission path.
type SignalCache interface {
	// LinkageCount returns the generation even on a miss; StoreLinkageCount
	// drops the write when an invalidation has bumped it since.
	LinkageCount(ctx context.Context, d models.Domain, nin domain.NIN) (count int, generation int64, ok bool, err error)
	StoreLinkageCount(ctx context.Context, d models.Domain, nin domain.NIN, count int, generation int64) error
	Invalidate(ctx context.Context, d models.Domain, nin domain.NIN) error
}
