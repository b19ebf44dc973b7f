package models

import (
	"strings"
	"time"

	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
)

// Domain names an external linkage domain.
type Domain string

const (
	DomainSIM  Domain = "SIM"
	DomainBank Domain = "BANK"
)

// Domains lists every supported domain.
var Domains = []Domain{DomainSIM, DomainBank}

func (d Domain) String() string {
	return string(d)
}

func (d Domain) IsValid() bool {
	return d == DomainSIM || d == DomainBank
}

// ParseDomain accepts "SIM" or "BANK" in any case.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToUpper(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "domain must be SIM or BANK")
	}
	return d, nil
}

// Status is the lifecycle state of a linkage. Every status counts toward the
// per-NIN cap; only deletion frees a slot.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusBlocked   Status = "BLOCKED"
	StatusLost      Status = "LOST"
	StatusFrozen    Status = "FROZEN"
	StatusClosed    Status = "CLOSED"
)

var domainStatuses = map[Domain][]Status{
	DomainSIM:  {StatusActive, StatusSuspended, StatusBlocked, StatusLost},
	DomainBank: {StatusActive, StatusFrozen, StatusClosed, StatusSuspended},
}

// ValidStatus reports whether s is a status the domain uses.
func (d Domain) ValidStatus(s Status) bool {
	for _, allowed := range domainStatuses[d] {
		if allowed == s {
			return true
		}
	}
	return false
}

// Statuses returns the statuses the domain uses.
func (d Domain) Statuses() []Status {
	return append([]Status(nil), domainStatuses[d]...)
}

// ParseStatus validates s against the domain's status set.
func (d Domain) ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !d.ValidStatus(st) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+strings.ToLower(d.String())+" status: "+s)
	}
	return st, nil
}

// AccountType classifies bank accounts.
type AccountType string

const (
	AccountSavings      AccountType = "SAVINGS"
	AccountCurrent      AccountType = "CURRENT"
	AccountFixedDeposit AccountType = "FIXED_DEPOSIT"
)

// ParseAccountType accepts the three account types in any case.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case AccountSavings, AccountCurrent, AccountFixedDeposit:
		return t, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "account_type must be SAVINGS, CURRENT or FIXED_DEPOSIT")
}

// Record binds a domain key (phone number or account number) to a NIN.
//
// Invariants:
//   - (Domain, Key) is unique across all records
//   - NIN references an existing citizen
//   - Status is valid for Domain
//   - AccountType and Balance are only meaningful for BANK
type Record struct {
	Domain      Domain      `json:"domain"`
	Key         string      `json:"key"`
	NIN         domain.NIN  `json:"nin"`
	Status      Status      `json:"status"`
	AccountType AccountType `json:"account_type,omitempty"`
	Balance     int64       `json:"balance,omitempty"` // minor units
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Listing is a record as shown in the domain listings, joined with the
// holder's registered name. The name is empty when the citizen is gone.
type Listing struct {
	*Record
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Summary aggregates one NIN's linkages in a domain for anomaly scanning.
type Summary struct {
	NIN        domain.NIN
	Total      int
	Keys       []string
	Recent     int
	RecentKeys []string
}

// Stats is the read-only analytics view of one domain.
type Stats struct {
	Total         int                 `json:"total"`
	ByStatus      map[Status]int      `json:"by_status"`
	ByAccountType map[AccountType]int `json:"by_account_type,omitempty"`
	Today         int                 `json:"today"`
	LastSevenDays int                 `json:"last_seven_days"`
}
