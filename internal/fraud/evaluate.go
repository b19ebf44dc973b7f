package fraud

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/audit"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
	"ninhub/pkg/requestcontext"
)

// maxKeyLength bounds candidate keys; format checks belong to the domain services.
const maxKeyLength = 64

// errDuplicateKey aborts an admission unit whose insert lost the race on
// the (domain, key) constraint.
var errDuplicateKey = errors.New("duplicate linkage key")

// EvaluateLinkage checks whether key may be linked to nin in domain d. It has
// no side effects. Checks run in a fixed order: input, blacklist, registry,
// cap, key collision. Rejections are returned as a Decision; the error is
// non-nil only for STORAGE_FAILURE.
func (e *Engine) EvaluateLinkage(ctx context.Context, nin string, d models.Domain, key string) (Decision, error) {
	start := time.Now()
	ctx, span := e.startSpan(ctx, "EvaluateLinkage")
	span.SetAttributes(attribute.String("domain", d.String()))

	decision, err := e.evaluate(ctx, nin, d, key)
	endSpan(span, err)
	e.metrics.ObserveLatency("evaluate", time.Since(start))
	if err != nil {
		e.logError(ctx, "linkage evaluation failed", d, err)
		return Decision{}, err
	}
	e.recordDecision(decision)
	return decision, nil
}

func (e *Engine) evaluate(ctx context.Context, rawNIN string, d models.Domain, rawKey string) (Decision, error) {
	now := requestcontext.Now(ctx)
	key := strings.TrimSpace(rawKey)

	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return rejected(dErrors.CodeInvalidInput, dErrors.MessageOf(err), domain.NIN(rawNIN), d, key, now), nil
	}
	if !d.IsValid() {
		return rejected(dErrors.CodeInvalidInput, "domain must be SIM or BANK", nin, d, key, now), nil
	}
	if key == "" || len(key) > maxKeyLength {
		return rejected(dErrors.CodeInvalidInput, "candidate key must be 1-64 characters", nin, d, key, now), nil
	}

	entry, err := e.blacklist.FindActive(ctx, nin)
	switch {
	case err == nil:
		return rejected(dErrors.CodeBlacklisted, entry.Reason, nin, d, key, now), nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return Decision{}, storageFailure(err, "blacklist lookup failed")
	}

	if _, err := e.citizens.FindByNIN(ctx, nin); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return rejected(dErrors.CodeUnknownNIN, "NIN not found in registry", nin, d, key, now), nil
		}
		return Decision{}, storageFailure(err, "registry lookup failed")
	}

	count, err := e.linkages.CountByNIN(ctx, d, nin)
	if err != nil {
		return Decision{}, storageFailure(err, "linkage count failed")
	}
	if limit := e.rules[d].Cap; count >= limit {
		return rejected(dErrors.CodeCapExceeded,
			fmt.Sprintf("NIN already has %d of %d permitted %s linkages", count, limit, d), nin, d, key, now), nil
	}

	if _, err := e.linkages.FindByKey(ctx, d, key); err == nil {
		return rejected(dErrors.CodeDuplicateKey, d.String()+" key already registered", nin, d, key, now), nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return Decision{}, storageFailure(err, "linkage key lookup failed")
	}

	return admitted(nin, d, key, now), nil
}

// Admit evaluates the candidate record and, when admitted, inserts it and
// appends the audit entry in one unit of work serialized on the NIN. A
// rejected decision leaves no trace; an insert that loses a concurrent race
// on the key is reported as DUPLICATE_KEY; an audit failure rolls the insert
// back and returns STORAGE_FAILURE.
func (e *Engine) Admit(ctx context.Context, actor domain.Actor, candidate models.Record) (Decision, error) {
	start := time.Now()
	ctx, span := e.startSpan(ctx, "Admit")
	span.SetAttributes(attribute.String("domain", candidate.Domain.String()))

	decision, err := e.admit(ctx, actor, candidate)
	endSpan(span, err)
	e.metrics.ObserveLatency("admit", time.Since(start))
	if err != nil {
		e.logError(ctx, "linkage admission failed", candidate.Domain, err)
		return Decision{}, err
	}

	e.recordDecision(decision)
	if decision.Admitted() {
		e.invalidateSignal(ctx, decision.Domain, decision.NIN)
		if e.logger != nil {
			e.logger.InfoContext(ctx, "linkage admitted",
				"request_id", requestcontext.RequestID(ctx),
				"actor_id", actor.ID,
				"domain", decision.Domain,
				"key", decision.Key,
			)
		}
	}
	return decision, nil
}

func (e *Engine) admit(ctx context.Context, actor domain.Actor, candidate models.Record) (Decision, error) {
	// Locking the key as well as the NIN keeps a concurrent admission of the
	// same key under another NIN from seeing this unit's uncommitted insert.
	ctx = txcontext.WithLockKeys(ctx,
		strings.ToUpper(strings.TrimSpace(candidate.NIN.String())),
		candidate.Domain.String()+":"+strings.ToUpper(strings.TrimSpace(candidate.Key)),
	)

	var decision Decision
	err := e.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		decision, err = e.evaluate(ctx, candidate.NIN.String(), candidate.Domain, candidate.Key)
		if err != nil || !decision.Admitted() {
			return err
		}

		record := candidate
		record.NIN = decision.NIN
		record.Key = decision.Key
		record.CreatedAt = decision.EvaluatedAt
		record.UpdatedAt = decision.EvaluatedAt
		if record.Status == "" {
			record.Status = models.StatusActive
		}

		if err := e.linkages.Insert(ctx, &record); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				decision = rejected(dErrors.CodeDuplicateKey, record.Domain.String()+" key already registered",
					record.NIN, record.Domain, record.Key, decision.EvaluatedAt)
				return errDuplicateKey
			}
			return storageFailure(err, "linkage insert failed")
		}

		if err := e.auditor.Emit(ctx, audit.Entry{
			ActorID: actor.ID,
			Action:  admissionAction(record.Domain),
			Detail:  admissionDetail(record),
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeStorageFailure, "audit append failed")
		}
		return nil
	})
	if errors.Is(err, errDuplicateKey) {
		return decision, nil
	}
	if err != nil {
		return Decision{}, storageFailure(err, "admission transaction failed")
	}
	return decision, nil
}

func admissionAction(d models.Domain) audit.Action {
	if d == models.DomainBank {
		return audit.ActionCreateAccount
	}
	return audit.ActionRegisterSIM
}

func admissionDetail(r models.Record) string {
	if r.Domain == models.DomainBank {
		return fmt.Sprintf("Created %s account %s for NIN %s", r.AccountType, r.Key, r.NIN)
	}
	return fmt.Sprintf("Registered SIM %s for NIN %s", r.Key, r.NIN)
}

func (e *Engine) recordDecision(d Decision) {
	e.metrics.IncrementDecision(d.Domain.String(), string(d.Outcome), string(d.Reason))
}

func (e *Engine) logError(ctx context.Context, msg string, d models.Domain, err error) {
	if e.logger == nil {
		return
	}
	e.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"domain", d,
		"error", err,
	)
}
