package fraud

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
	"ninhub/pkg/requestcontext"
)

// AlertType classifies anomaly alerts.
type AlertType string

const (
	// AlertDuplicate flags a NIN holding more linkages than the domain cap.
	AlertDuplicate AlertType = "DUPLICATE"
	// AlertVelocity flags a burst of linkage creation inside the window.
	AlertVelocity AlertType = "VELOCITY"
)

// Severity ranks alerts for triage.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// AnomalyAlert is one finding of ScanAnomalies.
type AnomalyAlert struct {
	Type       AlertType     `json:"type"`
	Severity   Severity      `json:"severity"`
	Domain     models.Domain `json:"domain"`
	NIN        domain.NIN    `json:"nin"`
	Count      int           `json:"count"`
	Keys       []string      `json:"keys"`
	Message    string        `json:"message"`
	DetectedAt time.Time     `json:"detected_at"`
}

// ScanAnomalies reads a fresh per-NIN snapshot of domain d and returns a
// sequence that yields every DUPLICATE alert (total above cap) followed by
// every VELOCITY alert (creations within the window at or above the threshold). The sequence is
// finite, holds no store resources and may be ranged over more than once;
// each range walks the same snapshot.
func (e *Engine) ScanAnomalies(ctx context.Context, d models.Domain) (iter.Seq[AnomalyAlert], error) {
	start := time.Now()
	ctx, span := e.startSpan(ctx, "ScanAnomalies")
	span.SetAttributes(attribute.String("domain", d.String()))

	seq, err := e.scan(ctx, d)
	endSpan(span, err)
	e.metrics.ObserveLatency("scan", time.Since(start))
	if err != nil {
		e.logError(ctx, "anomaly scan failed", d, err)
		return nil, err
	}
	return seq, nil
}

func (e *Engine) scan(ctx context.Context, d models.Domain) (iter.Seq[AnomalyAlert], error) {
	if !d.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "domain must be SIM or BANK")
	}
	rules := e.rules[d]
	now := requestcontext.Now(ctx)

	summaries, err := e.linkages.Summaries(ctx, d, now.Add(-rules.VelocityWindow))
	if err != nil {
		return nil, storageFailure(err, "linkage scan failed")
	}

	return func(yield func(AnomalyAlert) bool) {
		// All DUPLICATE alerts come before any VELOCITY alert.
		for _, s := range summaries {
			if s.Total <= rules.Cap {
				continue
			}
			alert := AnomalyAlert{
				Type:       AlertDuplicate,
				Severity:   SeverityHigh,
				Domain:     d,
				NIN:        s.NIN,
				Count:      s.Total,
				Keys:       s.Keys,
				Message:    fmt.Sprintf("NIN holds %d %s linkages, above the limit of %d", s.Total, d, rules.Cap),
				DetectedAt: now,
			}
			e.metrics.IncrementAnomaly(d.String(), string(AlertDuplicate))
			if !yield(alert) {
				return
			}
		}
		for _, s := range summaries {
			if s.Recent < rules.VelocityThreshold {
				continue
			}
			alert := AnomalyAlert{
				Type:       AlertVelocity,
				Severity:   SeverityMedium,
				Domain:     d,
				NIN:        s.NIN,
				Count:      s.Recent,
				Keys:       s.RecentKeys,
				Message:    fmt.Sprintf("%d %s linkages created within %s", s.Recent, d, rules.VelocityWindow),
				DetectedAt: now,
			}
			e.metrics.IncrementAnomaly(d.String(), string(AlertVelocity))
			if !yield(alert) {
				return
			}
		}
	}, nil
}
