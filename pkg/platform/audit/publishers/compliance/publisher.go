// Package compliance provides a fail-closed audit publisher.
//
// Publisher writes audit entries synchronously through the store bound to the
// caller's unit of work. If the write fails, an error is returned and the calling
// operation MUST fail so the change it describes is rolled back.
package compliance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "ninhub/pkg/platform/audit"
	"ninhub/pkg/requestcontext"
)

var (
	errMissingActor  = errors.New("audit entry requires ActorID")
	errMissingAction = errors.New("audit entry requires Action")
)

// Publisher emits audit entries with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates a compliance publisher.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit synchronously appends an audit entry. ID, Timestamp and RequestID are
// filled from ctx when unset. Returns error if persistence fails.
func (p *Publisher) Emit(ctx context.Context, entry audit.Entry) error {
	start := time.Now()

	if entry.ActorID == "" {
		return errMissingActor
	}
	if entry.Action == "" {
		return errMissingAction
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}
	if entry.RequestID == "" {
		entry.RequestID = requestcontext.RequestID(ctx)
	}

	if err := p.store.Append(ctx, entry); err != nil {
		p.metrics.IncPersistFailures()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: audit append failed",
				"action", entry.Action,
				"actor_id", entry.ActorID,
				"request_id", entry.RequestID,
				"error", err,
			)
		}
		return err
	}

	p.metrics.ObservePersistDuration(time.Since(start))
	p.metrics.IncEmitted(entry.Action)
	return nil
}

// Recent returns the newest audit entries for the audit-log read operation.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return p.store.ListRecent(ctx, limit)
}
