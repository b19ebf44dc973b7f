package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	blstore "ninhub/internal/blacklist/store"
	"ninhub/internal/fraud"
	linkservice "ninhub/internal/linkage/service"
	linkstore "ninhub/internal/linkage/store"
	"ninhub/internal/platform/postgres"
	regservice "ninhub/internal/registry/service"
	regstore "ninhub/internal/registry/store"
	httptransport "ninhub/internal/transport/http"
	"ninhub/pkg/platform/audit"
	auditmemory "ninhub/pkg/platform/audit/store/memory"
	auditpostgres "ninhub/pkg/platform/audit/store/postgres"
	txcontext "ninhub/pkg/platform/tx"
)

// linkageStore is the full surface the linkage store offers to the engine,
// the linkage service and the registry's deletion guard.
type linkageStore interface {
	fraud.LinkageStore
	linkservice.Store
	regservice.LinkageCounter
}

// backend groups the stores and the transaction runner for one storage mode.
type backend struct {
	citizens  regservice.Store
	blacklist fraud.BlacklistStore
	linkages  linkageStore
	audit     audit.Store
	runner    txcontext.Runner
	checks    map[string]httptransport.HealthCheck
	close     func() error
}

// openBackend connects to Postgres when dsn is set and falls back to the
// in-memory stores otherwise.
func openBackend(ctx context.Context, dsn string, txTimeout time.Duration, log *slog.Logger) (*backend, error) {
	if dsn == "" {
		log.InfoContext(ctx, "DATABASE_URL not set, using in-memory stores")
		return &backend{
			citizens:  regstore.NewInMemory(),
			blacklist: blstore.NewInMemory(),
			linkages:  linkstore.NewInMemory(),
			audit:     auditmemory.NewInMemoryStore(),
			runner:    txcontext.NewShardedRunner(txTimeout),
			checks:    map[string]httptransport.HealthCheck{},
			close:     func() error { return nil },
		}, nil
	}

	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := postgres.Migrate(db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return postgresBackend(db, txTimeout), nil
}

func postgresBackend(db *sql.DB, txTimeout time.Duration) *backend {
	return &backend{
		citizens:  regstore.NewPostgres(db),
		blacklist: blstore.NewPostgres(db),
		linkages:  linkstore.NewPostgres(db),
		audit:     auditpostgres.New(db),
		runner:    txcontext.NewSQLRunner(db, txTimeout),
		checks: map[string]httptransport.HealthCheck{
			"postgres": db.PingContext,
		},
		close: db.Close,
	}
}
