package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the fraud engine.
type Metrics struct {
	// Linkage decisions by domain, outcome and rejection reason
	Decisions *prometheus.CounterVec

	// Latency of each engine operation
	OperationLatency *prometheus.HistogramVec

	// Alerts produced by anomaly scans
	Anomalies *prometheus.CounterVec

	// Blacklist add/remove operations that committed
	BlacklistMutations *prometheus.CounterVec

	// Signal cache lookups by result: hit, miss, error
	SignalCache *prometheus.CounterVec
}

// New registers fraud engine metrics on reg (the default registry when nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ninhub_fraud_decisions_total",
			Help: "Linkage decisions by domain, outcome and reason",
		}, []string{"domain", "outcome", "reason"}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ninhub_fraud_operation_duration_seconds",
			Help:    "Duration of fraud engine operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		Anomalies: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ninhub_fraud_anomalies_total",
			Help: "Anomaly alerts produced by domain and alert type",
		}, []string{"domain", "type"}),

		BlacklistMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ninhub_fraud_blacklist_mutations_total",
			Help: "Committed blacklist mutations by action",
		}, []string{"action"}),

		SignalCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ninhub_fraud_signal_cache_total",
			Help: "Fraud signal cache lookups by result",
		}, []string{"result"}),
	}
}

// IncrementDecision records a linkage decision.
func (m *Metrics) IncrementDecision(domain, outcome, reason string) {
	if m != nil {
		m.Decisions.WithLabelValues(domain, outcome, reason).Inc()
	}
}

// ObserveLatency records the duration of an engine operation.
func (m *Metrics) ObserveLatency(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementAnomaly records one produced alert.
func (m *Metrics) IncrementAnomaly(domain, alertType string) {
	if m != nil {
		m.Anomalies.WithLabelValues(domain, alertType).Inc()
	}
}

// IncrementBlacklistMutation records a committed blacklist change.
func (m *Metrics) IncrementBlacklistMutation(action string) {
	if m != nil {
		m.BlacklistMutations.WithLabelValues(action).Inc()
	}
}

// IncrementSignalCache records a cache lookup result.
func (m *Metrics) IncrementSignalCache(result string) {
	if m != nil {
		m.SignalCache.WithLabelValues(result).Inc()
	}
}
