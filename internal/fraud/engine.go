// Package fraud is the cross-domain consistency and fraud-control engine. It
// decides whether a SIM or bank-account linkage may be bound to a NIN, reports
// advisory fraud signals, scans for anomalies and manages the blacklist.
//
// Admission runs as one unit of work (evaluate, insert, audit) serialized per
// NIN, with the storage-level uniqueness constraint on (domain, key) as the
// final guard against concurrent duplicates.
package fraud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ninhub/internal/fraud/metrics"
	"ninhub/internal/linkage/models"
	dErrors "ninhub/pkg/domain-errors"
	txcontext "ninhub/pkg/platform/tx"
)

const tracerName = "ninhub/internal/fraud"

// Engine evaluates linkage requests against the registry, blacklist and
// linkage stores. It never retries a failed storage call.
type Engine struct {
	citizens  CitizenReader
	blacklist BlacklistStore
	linkages  LinkageStore
	tx        txcontext.Runner
	auditor   AuditPublisher
	rules     map[models.Domain]Rules
	cache     SignalCache
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRules overrides the rules of one domain.
func WithRules(d models.Domain, r Rules) Option {
	return func(e *Engine) {
		e.rules[d] = r
	}
}

// WithSignalCache enables caching of linkage counts for ComputeFraudSignal.
func WithSignalCache(c SignalCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// New constructs an Engine. Rules default to DefaultRules.
func New(
	citizens CitizenReader,
	blacklist BlacklistStore,
	linkages LinkageStore,
	runner txcontext.Runner,
	auditor AuditPublisher,
	opts ...Option,
) (*Engine, error) {
	e := &Engine{
		citizens:  citizens,
		blacklist: blacklist,
		linkages:  linkages,
		tx:        runner,
		auditor:   auditor,
		rules:     DefaultRules(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.citizens == nil || e.blacklist == nil || e.linkages == nil || e.tx == nil || e.auditor == nil {
		return nil, errors.New("fraud engine: stores, tx runner and audit publisher are required")
	}
	for _, d := range models.Domains {
		if err := e.rules[d].validate(d); err != nil {
			return nil, fmt.Errorf("fraud engine: %w", err)
		}
	}
	return e, nil
}

// Rules returns the rules in force for d.
func (e *Engine) Rules(d models.Domain) Rules {
	return e.rules[d]
}

func (e *Engine) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "fraud."+name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

// storageFailure marks a repository error as STORAGE_FAILURE unless it
// already carries a code (for example a tx timeout).
func storageFailure(err error, msg string) error {
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeStorageFailure, msg)
}
