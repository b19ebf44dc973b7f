package fraud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/platform/sentinel"
	"ninhub/pkg/requestcontext"
)

// signalTimeout bounds the concurrent lookups behind a fraud signal.
const signalTimeout = 3 * time.Second

// FraudSignal is the advisory view of a NIN within one domain. It is a query,
// not a gate: admission is decided only by EvaluateLinkage/Admit.
type FraudSignal struct {
	NIN             domain.NIN    `json:"nin"`
	Domain          models.Domain `json:"domain"`
	Registered      bool          `json:"registered"`
	Blacklisted     bool          `json:"blacklisted"`
	BlacklistReason string        `json:"blacklist_reason,omitempty"`
	LinkageCount    int           `json:"linkage_count"`
	Cap             int           `json:"cap"`
	AtOrOverCap     bool          `json:"at_or_over_cap"`
	Alert           string        `json:"alert,omitempty"`
	ComputedAt      time.Time     `json:"computed_at"`
}

// ComputeFraudSignal gathers blacklist status, registry presence and the
// linkage count concurrently. The count may be served from the signal cache.
func (e *Engine) ComputeFraudSignal(ctx context.Context, rawNIN string, d models.Domain) (*FraudSignal, error) {
	start := time.Now()
	ctx, span := e.startSpan(ctx, "ComputeFraudSignal")
	span.SetAttributes(attribute.String("domain", d.String()))

	signal, err := e.computeSignal(ctx, rawNIN, d)
	endSpan(span, err)
	e.metrics.ObserveLatency("signal", time.Since(start))
	if err != nil && dErrors.HasCode(err, dErrors.CodeStorageFailure) {
		e.logError(ctx, "fraud signal failed", d, err)
	}
	return signal, err
}

func (e *Engine) computeSignal(ctx context.Context, rawNIN string, d models.Domain) (*FraudSignal, error) {
	nin, err := domain.ParseNIN(rawNIN)
	if err != nil {
		return nil, err
	}
	if !d.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "domain must be SIM or BANK")
	}

	signal := &FraudSignal{
		NIN:        nin,
		Domain:     d,
		Cap:        e.rules[d].Cap,
		ComputedAt: requestcontext.Now(ctx),
	}

	gctx, cancel := context.WithTimeout(ctx, signalTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(gctx)

	g.Go(func() error {
		entry, err := e.blacklist.FindActive(gctx, nin)
		switch {
		case err == nil:
			signal.Blacklisted = true
			signal.BlacklistReason = entry.Reason
			return nil
		case errors.Is(err, sentinel.ErrNotFound):
			return nil
		default:
			return storageFailure(err, "blacklist lookup failed")
		}
	})

	g.Go(func() error {
		_, err := e.citizens.FindByNIN(gctx, nin)
		switch {
		case err == nil:
			signal.Registered = true
			return nil
		case errors.Is(err, sentinel.ErrNotFound):
			return nil
		default:
			return storageFailure(err, "registry lookup failed")
		}
	})

	g.Go(func() error {
		count, err := e.cachedCount(gctx, d, nin)
		if err != nil {
			return err
		}
		signal.LinkageCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	signal.AtOrOverCap = signal.LinkageCount >= signal.Cap
	signal.Alert = alertFor(signal)
	return signal, nil
}

func alertFor(s *FraudSignal) string {
	switch {
	case s.Blacklisted:
		return "CRITICAL: NIN is blacklisted: " + s.BlacklistReason
	case !s.Registered:
		return "WARNING: NIN is not in the registry"
	case s.LinkageCount > s.Cap:
		return fmt.Sprintf("WARNING: NIN holds %d %s linkages, above the limit of %d", s.LinkageCount, s.Domain, s.Cap)
	case s.AtOrOverCap:
		return fmt.Sprintf("NIN has reached the limit of %d %s linkages", s.Cap, s.Domain)
	default:
		return ""
	}
}

// cachedCount reads the linkage count through the signal cache. Cache
// failures are logged and fall back to the store; a failed read skips the
// write-back since the generation is unknown.
func (e *Engine) cachedCount(ctx context.Context, d models.Domain, nin domain.NIN) (int, error) {
	var (
		generation int64
		writeBack  bool
	)
	if e.cache != nil {
		count, gen, ok, err := e.cache.LinkageCount(ctx, d, nin)
		switch {
		case err != nil:
			e.metrics.IncrementSignalCache("error")
			e.logCacheError(ctx, "signal cache read failed", err)
		case ok:
			e.metrics.IncrementSignalCache("hit")
			return count, nil
		default:
			e.metrics.IncrementSignalCache("miss")
			generation, writeBack = gen, true
		}
	}

	count, err := e.linkages.CountByNIN(ctx, d, nin)
	if err != nil {
		return 0, storageFailure(err, "linkage count failed")
	}

	if writeBack {
		if err := e.cache.StoreLinkageCount(ctx, d, nin, count, generation); err != nil {
			e.logCacheError(ctx, "signal cache write failed", err)
		}
	}
	return count, nil
}

// InvalidateSignal drops the cached count for nin in d. Call after every
// committed insert or delete of a linkage.
func (e *Engine) InvalidateSignal(ctx context.Context, d models.Domain, nin domain.NIN) {
	e.invalidateSignal(ctx, d, nin)
}

func (e *Engine) invalidateSignal(ctx context.Context, d models.Domain, nin domain.NIN) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Invalidate(ctx, d, nin); err != nil {
		e.logCacheError(ctx, "signal cache invalidation failed", err)
	}
}

func (e *Engine) logCacheError(ctx context.Context, msg string, err error) {
	if e.logger != nil {
		e.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
