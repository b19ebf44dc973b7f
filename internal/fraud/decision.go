package fraud

import (
	"time"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
)

// Outcome is the admit/reject result of a linkage evaluation.
type Outcome string

const (
	OutcomeAdmitted Outcome = "admitted"
	OutcomeRejected Outcome = "rejected"
)

// Decision is the structured result of EvaluateLinkage and Admit. Reason is
// empty when admitted; otherwise it is one of CodeInvalidInput,
// CodeBlacklisted, CodeUnknownNIN, CodeCapExceeded or CodeDuplicateKey.
type Decision struct {
	Outcome     Outcome       `json:"outcome"`
	Reason      dErrors.Code  `json:"reason,omitempty"`
	Detail      string        `json:"detail,omitempty"`
	Domain      models.Domain `json:"domain"`
	NIN         domain.NIN    `json:"nin"`
	Key         string        `json:"key"`
	EvaluatedAt time.Time     `json:"evaluated_at"`
}

func (d Decision) Admitted() bool {
	return d.Outcome == OutcomeAdmitted
}

// Err converts a rejection into a coded error; nil when admitted.
func (d Decision) Err() error {
	if d.Admitted() {
		return nil
	}
	return dErrors.New(d.Reason, d.Detail)
}

func admitted(nin domain.NIN, d models.Domain, key string, now time.Time) Decision {
	return Decision{Outcome: OutcomeAdmitted, Domain: d, NIN: nin, Key: key, EvaluatedAt: now}
}

func rejected(reason dErrors.Code, detail string, nin domain.NIN, d models.Domain, key string, now time.Time) Decision {
	return Decision{
		Outcome:     OutcomeRejected,
		Reason:      reason,
		Detail:      detail,
		Domain:      d,
		NIN:         nin,
		Key:         key,
		EvaluatedAt: now,
	}
}
