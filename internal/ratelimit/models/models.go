package models

import (
	"net/http"
	"time"
)

// EndpointClass groups routes that share a request budget.
type EndpointClass string

const (
	// ClassRead covers lookups, listings, signals and anomaly scans.
	ClassRead EndpointClass = "read"
	// ClassWrite covers every mutation plus linkage evaluation.
	ClassWrite EndpointClass = "write"
)

// ClassFor classifies a request by method. Linkage evaluation is a POST and
// is budgeted as a write.
func ClassFor(method string) EndpointClass {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ClassRead
	default:
		return ClassWrite
	}
}

// Limit is a sliding-window request budget.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// DefaultLimits returns the per-actor budgets applied when none are configured.
func DefaultLimits() map[EndpointClass]Limit {
	return map[EndpointClass]Limit{
		ClassRead:  {RequestsPerWindow: 300, Window: time.Minute},
		ClassWrite: {RequestsPerWindow: 60, Window: time.Minute},
	}
}

// RateLimitResult is the outcome of one budget check.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds; set when denied
}
