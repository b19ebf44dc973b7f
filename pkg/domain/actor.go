package domain

import (
	"strings"

	dErrors "ninhub/pkg/domain-errors"
)

// ActorID identifies the officer or administrator performing an operation.
type ActorID string

// ParseActorID validates an actor identifier from a token or header.
func ParseActorID(s string) (ActorID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "actor id is required")
	}
	if len(s) > 64 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "actor id must be at most 64 characters")
	}
	return ActorID(s), nil
}

func (a ActorID) String() string {
	return string(a)
}

// Role is the organisational role an actor holds.
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleNCRAAdmin      Role = "ncra_admin"
	RoleBankOfficer    Role = "bank_officer"
	RoleTelecomOfficer Role = "telecom_officer"
)

var validRoles = map[Role]bool{
	RoleSuperAdmin:     true,
	RoleNCRAAdmin:      true,
	RoleBankOfficer:    true,
	RoleTelecomOfficer: true,
}

// ParseRole validates a role claim.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !validRoles[r] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role: "+s)
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   ActorID
	Role Role
}

// IsZero reports whether no actor has been established.
func (a Actor) IsZero() bool {
	return a.ID == "" && a.Role == ""
}
