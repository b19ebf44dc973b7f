package models

import (
	"strings"
	"time"

	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Citizen is an identity record in the national registry, keyed by NIN.
//
// Invariants:
//   - NIN is assigned by the registry and never changes
//   - FirstName, LastName, Gender and Address are non-empty
//   - DateOfBirth is a valid YYYY-MM-DD date
type Citizen struct {
	NIN         domain.NIN `json:"nin"`
	FirstName   string     `json:"first_name"`
	MiddleName  string     `json:"middle_name,omitempty"`
	LastName    string     `json:"last_name"`
	DateOfBirth string     `json:"date_of_birth"`
	Gender      string     `json:"gender"`
	Height      string     `json:"height,omitempty"`
	Address     string     `json:"address"`
	PhotoRef    string     `json:"photo_ref,omitempty"`
	ExpiryDate  *string    `json:"expiry_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Details are the caller-supplied citizen attributes.
type Details struct {
	FirstName   string
	MiddleName  string
	LastName    string
	DateOfBirth string
	Gender      string
	Height      string
	Address     string
	PhotoRef    string
	ExpiryDate  string
}

// Normalize trims every field.
func (d *Details) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.MiddleName = strings.TrimSpace(d.MiddleName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.DateOfBirth = strings.TrimSpace(d.DateOfBirth)
	d.Gender = strings.TrimSpace(d.Gender)
	d.Height = strings.TrimSpace(d.Height)
	d.Address = strings.TrimSpace(d.Address)
	d.PhotoRef = strings.TrimSpace(d.PhotoRef)
	d.ExpiryDate = strings.TrimSpace(d.ExpiryDate)
}

// Validate checks required fields and date formats.
func (d Details) Validate() error {
	switch {
	case d.FirstName == "":
		return dErrors.New(dErrors.CodeInvalidInput, "first_name is required")
	case d.LastName == "":
		return dErrors.New(dErrors.CodeInvalidInput, "last_name is required")
	case d.Gender == "":
		return dErrors.New(dErrors.CodeInvalidInput, "gender is required")
	case d.Address == "":
		return dErrors.New(dErrors.CodeInvalidInput, "address is required")
	}
	if _, err := time.Parse(DateLayout, d.DateOfBirth); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "date_of_birth must be YYYY-MM-DD")
	}
	if d.ExpiryDate != "" {
		if _, err := time.Parse(DateLayout, d.ExpiryDate); err != nil {
			return dErrors.New(dErrors.CodeInvalidInput, "expiry_date must be YYYY-MM-DD")
		}
	}
	return nil
}

// NewCitizen builds a validated record for a freshly issued NIN.
func NewCitizen(nin domain.NIN, d Details, now time.Time) (*Citizen, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c := &Citizen{NIN: nin, CreatedAt: now}
	c.apply(d, now)
	return c, nil
}

// Update replaces the mutable attributes. The NIN and CreatedAt are preserved.
func (c *Citizen) Update(d Details, now time.Time) error {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return err
	}
	c.apply(d, now)
	return nil
}

func (c *Citizen) apply(d Details, now time.Time) {
	c.FirstName = d.FirstName
	c.MiddleName = d.MiddleName
	c.LastName = d.LastName
	c.DateOfBirth = d.DateOfBirth
	c.Gender = d.Gender
	c.Height = d.Height
	c.Address = d.Address
	c.PhotoRef = d.PhotoRef
	c.ExpiryDate = nil
	if d.ExpiryDate != "" {
		expiry := d.ExpiryDate
		c.ExpiryDate = &expiry
	}
	c.UpdatedAt = now
}

// FullName joins the name parts for audit details.
func (c *Citizen) FullName() string {
	parts := []string{c.FirstName}
	if c.MiddleName != "" {
		parts = append(parts, c.MiddleName)
	}
	parts = append(parts, c.LastName)
	return strings.Join(parts, " ")
}
