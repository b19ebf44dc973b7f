package fraud

import (
	"context"
	"errors"
	"time"

	blmodels "ninhub/internal/blacklist/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
	"ninhub/pkg/requestcontext"
)

// AddToBlacklist creates an ACTIVE entry for nin and audits it in the same
// unit of work. Fails with ALREADY_BLACKLISTED when one already exists.
func (e *Engine) AddToBlacklist(ctx context.Context, actor domain.Actor, rawNIN, reason string) (*blmodels.Entry, error) {
	start := time.Now()
	ctx, span := e.startSpan(ctx, "AddToBlacklist")

	entry, err := e.addToBlacklist(ctx, actor, rawNIN, reason)
	endSpan(span, err)
	e.metrics.ObserveLatency("blacklist_add", time.Since(start))
	if err != nil {
		return nil, err
	}

	e.metrics.IncrementBlacklistMutation("add")
	if e.logger != nil {
		e.logger.InfoContext(ctx, "nin blacklisted",
			"request_id", requestcontext.RequestID(ctx),
			"actor_id", actor.ID,
			"entry_id", entry.ID,
		)
	}
	return entry, nil
}

func (e *Engine) addToBlacklist(ctx context.Context, actor domain.Actor, rawNIN, reason string) (*blmodels.Entry, error) {
	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return nil, err
	}
	entry, err := blmodels.NewEntry(nin, reason, actor.ID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	ctx = txcontext.WithLockKey(ctx, nin.String())
	err = e.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := e.blacklist.FindActive(ctx, nin); err == nil {
			return dErrors.New(dErrors.CodeAlreadyBlacklisted, "NIN is already blacklisted")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return storageFailure(err, "blacklist lookup failed")
		}

		if err := e.blacklist.Insert(ctx, entry); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeAlreadyBlacklisted, "NIN is already blacklisted")
			}
			return storageFailure(err, "blacklist insert failed")
		}

		if err := e.auditor.Emit(ctx, audit.Entry{
			ActorID: actor.ID,
			Action:  audit.ActionBlacklistNIN,
			Detail:  "Blacklisted " + nin.String() + ": " + entry.Reason,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeStorageFailure, "audit append failed")
		}
		return nil
	})
	if err != nil {
		return nil, storageFailure(err, "blacklist transaction failed")
	}
	return entry, nil
}

// RemoveFromBlacklist moves the ACTIVE entry for nin to REMOVED. Fails with
// NOT_FOUND when there is none. Past decisions and linkages are untouched.
func (e *Engine) RemoveFromBlacklist(ctx context.Context, actor domain.Actor, rawNIN string) (*blmodels.Entry, error) {
	start := time.Now()
	ctx, span := e.startSpan(ctx, "RemoveFromBlacklist")

	entry, err := e.removeFromBlacklist(ctx, actor, rawNIN)
	endSpan(span, err)
	e.metrics.ObserveLatency("blacklist_remove", time.Since(start))
	if err != nil {
		return nil, err
	}

	e.metrics.IncrementBlacklistMutation("remove")
	if e.logger != nil {
		e.logger.InfoContext(ctx, "nin removed from blacklist",
			"request_id", requestcontext.RequestID(ctx),
			"actor_id", actor.ID,
			"entry_id", entry.ID,
		)
	}
	return entry, nil
}

func (e *Engine) removeFromBlacklist(ctx context.Context, actor domain.Actor, rawNIN string) (*blmodels.Entry, error) {
	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	var entry *blmodels.Entry
	ctx = txcontext.WithLockKey(ctx, nin.String())
	err = e.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = e.blacklist.FindActive(ctx, nin)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "NIN has no active blacklist entry")
			}
			return storageFailure(err, "blacklist lookup failed")
		}

		if err := entry.Remove(actor.ID, now); err != nil {
			return err
		}
		if err := e.blacklist.UpdateStatus(ctx, entry.ID, blmodels.StatusActive, blmodels.StatusRemoved, actor.ID, now); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "NIN has no active blacklist entry")
			}
			return storageFailure(err, "blacklist update failed")
		}

		if err := e.auditor.Emit(ctx, audit.Entry{
			ActorID: actor.ID,
			Action:  audit.ActionRemoveBlacklist,
			Detail:  "Removed " + nin.String() + " from blacklist",
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeStorageFailure, "audit append failed")
		}
		return nil
	})
	if err != nil {
		return nil, storageFailure(err, "blacklist transaction failed")
	}
	return entry, nil
}

// ListBlacklist returns the ACTIVE entries, newest first.
func (e *Engine) ListBlacklist(ctx context.Context) ([]*blmodels.Entry, error) {
	entries, err := e.blacklist.ListActive(ctx)
	if err != nil {
		return nil, storageFailure(err, "blacklist list failed")
	}
	return entries, nil
}

// BlacklistHistory returns every entry ever recorded for nin, newest first.
func (e *Engine) BlacklistHistory(ctx context.Context, rawNIN string) ([]*blmodels.Entry, error) {
	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return nil, err
	}
	entries, err := e.blacklist.ListByNIN(ctx, nin)
	if err != nil {
		return nil, storageFailure(err, "blacklist history failed")
	}
	return entries, nil
}
