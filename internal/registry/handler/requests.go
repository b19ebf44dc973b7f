package handler

import (
	"ninhub/internal/registry/models"
	dErrors "ninhub/pkg/domain-errors"
)

// maxFieldLength bounds every free-text citizen attribute.
const maxFieldLength = 200

// CitizenRequest is the HTTP request body for registering or updating a citizen.
type CitizenRequest struct {
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Height      string `json:"height"`
	Address     string `json:"address"`
	PhotoRef    string `json:"photo_ref"`
	ExpiryDate  string `json:"expiry_date"`

	details models.Details
}

// Validate normalises the attributes and checks them against the registry rules.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CitizenRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	for _, v := range []string{r.FirstName, r.MiddleName, r.LastName, r.Gender, r.Height, r.Address, r.PhotoRef} {
		if len(v) > maxFieldLength {
			return dErrors.New(dErrors.CodeInvalidInput, "citizen fields must be at most 200 characters")
		}
	}

	d := models.Details{
		FirstName:   r.FirstName,
		MiddleName:  r.MiddleName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Gender:      r.Gender,
		Height:      r.Height,
		Address:     r.Address,
		PhotoRef:    r.PhotoRef,
		ExpiryDate:  r.ExpiryDate,
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return err
	}
	r.details = d
	return nil
}

// Details returns the validated attributes.
func (r *CitizenRequest) Details() models.Details {
	return r.details
}
