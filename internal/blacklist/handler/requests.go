package handler

import (
	"strings"

	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
)

// AddRequest is the HTTP request body for POST /blacklist.
type AddRequest struct {
	NIN    string `json:"nin"`
	Reason string `json:"reason"`
}

// Validate checks the NIN format and that a reason is present. Reason length
// is enforced by the entry constructor.
func (r *AddRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if _, err := domain.ParseNIN(r.NIN); err != nil {
		return err
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "reason is required")
	}
	return nil
}
