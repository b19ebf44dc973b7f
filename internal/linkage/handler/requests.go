package handler

import (
	"strings"

	dErrors "ninhub/pkg/domain-errors"
)

// maxInputLength bounds identifiers before they reach the domain parsers.
const maxInputLength = 64

// RegisterSIMRequest is the HTTP request body for POST /telecom/sims.
type RegisterSIMRequest struct {
	NIN         string `json:"nin"`
	PhoneNumber string `json:"phone_number"`
}

// Validate checks presence and size. Format rules are applied by the service.
func (r *RegisterSIMRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.NIN = strings.TrimSpace(r.NIN)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	if r.NIN == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "nin is required")
	}
	if r.PhoneNumber == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "phone_number is required")
	}
	if len(r.NIN) > maxInputLength || len(r.PhoneNumber) > maxInputLength {
		return dErrors.New(dErrors.CodeInvalidInput, "nin and phone_number must be at most 64 characters")
	}
	return nil
}

// OpenAccountRequest is the HTTP request body for POST /bank/accounts.
type OpenAccountRequest struct {
	NIN            string `json:"nin"`
	AccountType    string `json:"account_type"`
	InitialBalance int64  `json:"initial_balance"`
}

// Validate checks presence and size. Account type and balance rules are
// applied by the service.
func (r *OpenAccountRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.NIN = strings.TrimSpace(r.NIN)
	r.AccountType = strings.TrimSpace(r.AccountType)
	if r.NIN == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "nin is required")
	}
	if r.AccountType == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "account_type is required")
	}
	if len(r.NIN) > maxInputLength || len(r.AccountType) > maxInputLength {
		return dErrors.New(dErrors.CodeInvalidInput, "nin and account_type must be at most 64 characters")
	}
	return nil
}

// UpdateStatusRequest is the HTTP request body for PATCH .../{key}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "status is required")
	}
	return nil
}

// EvaluateRequest is the HTTP request body for POST .../evaluate. Malformed
// values are not rejected here: they come back as an INVALID_INPUT decision.
type EvaluateRequest struct {
	NIN string `json:"nin"`
	Key string `json:"key"`
}

func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}
