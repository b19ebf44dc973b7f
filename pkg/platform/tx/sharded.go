package tx

import (
	"context"
	"slices"
	"sync"
	"time"

	dErrors "ninhub/pkg/domain-errors"
)

// numShards spreads lock keys over independent mutexes so unrelated NINs do
// not contend with each other.
const numShards = 128

// Journal collects undo actions for in-memory writes made inside a unit of
// work. On failure they are replayed in reverse order.
type Journal struct {
	mu   sync.Mutex
	undo []func()
}

// Record registers an action that reverts a write already applied.
func (j *Journal) Record(undo func()) {
	j.mu.Lock()
	j.undo = append(j.undo, undo)
	j.mu.Unlock()
}

func (j *Journal) rollback() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// JournalFrom returns the journal of the enclosing in-memory unit, if any.
func JournalFrom(ctx context.Context) (*Journal, bool) {
	j, ok := ctx.Value(journalKey).(*Journal)
	return j, ok
}

// ShardedRunner is the in-memory Runner. Each lock key maps to one of 128
// FNV-1a sharded mutexes and a unit holds the shards of all its keys, taken in
// ascending order. Units without a key use shard 0. Writes made by
// journal-aware stores are undone when fn fails.
//
// Memory stores apply writes in place, so a reader outside the unit's shards
// can observe a row that is later rolled back. Units that must not see each
// other's pending writes have to share a lock key.
type ShardedRunner struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

func NewShardedRunner(timeout time.Duration) *ShardedRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ShardedRunner{timeout: timeout}
}

func (r *ShardedRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	// Nested call: join the outer unit and its journal.
	if _, ok := JournalFrom(ctx); ok {
		return fn(ctx)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	shards := r.selectShards(ctx)
	for _, shard := range shards {
		r.shards[shard].Lock()
	}
	defer func() {
		for i := len(shards) - 1; i >= 0; i-- {
			r.shards[shards[i]].Unlock()
		}
	}()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	journal := &Journal{}
	if err := fn(context.WithValue(ctx, journalKey, journal)); err != nil {
		journal.rollback()
		return err
	}
	return nil
}

// selectShards returns the distinct shards for the lock keys in ctx, sorted so
// that overlapping units always acquire them in the same order.
func (r *ShardedRunner) selectShards(ctx context.Context) []int {
	keys := LockKeys(ctx)
	if len(keys) == 0 {
		return []int{0}
	}
	shards := make([]int, 0, len(keys))
	for _, key := range keys {
		shards = append(shards, int(hashString(key)%numShards))
	}
	slices.Sort(shards)
	return slices.Compact(shards)
}

// hashString is 32-bit FNV-1a.
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
