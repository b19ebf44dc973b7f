package tx

import (
	"context"
	"database/sql"
	"slices"
)

type ctxKey struct{}

type lockKeyCtx struct{}

type journalKeyCtx struct{}

var (
	txKey      = ctxKey{}
	lockKey    = lockKeyCtx{}
	journalKey = journalKeyCtx{}
)

// Runner executes fn as a single atomic unit. Stores reached through the ctx
// passed to fn join the unit; if fn returns an error every write is undone.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// WithLockKeys adds serialization keys for the next RunInTx call. Units that
// share any key never interleave; units with disjoint keys may run
// concurrently. Empty keys are ignored.
func WithLockKeys(ctx context.Context, keys ...string) context.Context {
	merged := LockKeys(ctx)
	for _, key := range keys {
		if key != "" {
			merged = append(merged, key)
		}
	}
	if len(merged) == 0 {
		return ctx
	}
	slices.Sort(merged)
	return context.WithValue(ctx, lockKey, slices.Compact(merged))
}

// WithLockKey adds a single serialization key.
func WithLockKey(ctx context.Context, key string) context.Context {
	return WithLockKeys(ctx, key)
}

// LockKeys returns the sorted, de-duplicated serialization keys carried in ctx.
func LockKeys(ctx context.Context) []string {
	keys, _ := ctx.Value(lockKey).([]string)
	return slices.Clone(keys)
}
