// Package policy is the static access table: which roles may invoke which
// operations. Transport consults it once per request before dispatch.
package policy

import (
	"ninhub/pkg/domain"
	dErrors "ninhub/pkg/domain-errors"
)

// Operation names an exposed operation.
type Operation string

const (
	OpRegisterCitizen Operation = "registry.register"
	OpUpdateCitizen   Operation = "registry.update"
	OpDeleteCitizen   Operation = "registry.delete"
	OpListCitizens    Operation = "registry.list"
	OpVerifyNIN       Operation = "registry.verify"

	OpRegisterSIM     Operation = "sim.register"
	OpUpdateSIMStatus Operation = "sim.update_status"
	OpDeleteSIM       Operation = "sim.delete"
	OpListSIMs        Operation = "sim.list"
	OpEvaluateSIM     Operation = "sim.evaluate"
	OpSIMFraudSignal  Operation = "sim.fraud_signal"
	OpSIMAnomalies    Operation = "sim.anomalies"
	OpSIMAnalytics    Operation = "sim.analytics"

	OpOpenAccount         Operation = "bank.open_account"
	OpUpdateAccountStatus Operation = "bank.update_status"
	OpDeleteAccount       Operation = "bank.delete"
	OpListAccounts        Operation = "bank.list"
	OpEvaluateAccount     Operation = "bank.evaluate"
	OpBankFraudSignal     Operation = "bank.fraud_signal"
	OpBankAnomalies       Operation = "bank.anomalies"
	OpBankAnalytics       Operation = "bank.analytics"

	OpBlacklistAdd     Operation = "blacklist.add"
	OpBlacklistRemove  Operation = "blacklist.remove"
	OpBlacklistList    Operation = "blacklist.list"
	OpBlacklistHistory Operation = "blacklist.history"

	OpReadAuditLog Operation = "audit.read"
	OpViewStats    Operation = "stats.view"
)

var (
	registryAdmins = []domain.Role{domain.RoleSuperAdmin, domain.RoleNCRAAdmin}
	telecomOnly    = []domain.Role{domain.RoleTelecomOfficer}
	bankOnly       = []domain.Role{domain.RoleBankOfficer}
	blacklisters   = []domain.Role{domain.RoleTelecomOfficer, domain.RoleSuperAdmin, domain.RoleNCRAAdmin}
	everyone       = []domain.Role{domain.RoleSuperAdmin, domain.RoleNCRAAdmin, domain.RoleBankOfficer, domain.RoleTelecomOfficer}
)

var table = build(map[Operation][]domain.Role{
	OpRegisterCitizen: registryAdmins,
	OpUpdateCitizen:   registryAdmins,
	OpDeleteCitizen:   registryAdmins,
	OpListCitizens:    registryAdmins,
	OpVerifyNIN:       everyone,

	OpRegisterSIM:     telecomOnly,
	OpUpdateSIMStatus: telecomOnly,
	OpDeleteSIM:       telecomOnly,
	OpListSIMs:        telecomOnly,
	OpEvaluateSIM:     telecomOnly,
	OpSIMFraudSignal:  telecomOnly,
	OpSIMAnomalies:    telecomOnly,
	OpSIMAnalytics:    telecomOnly,

	OpOpenAccount:         bankOnly,
	OpUpdateAccountStatus: bankOnly,
	OpDeleteAccount:       bankOnly,
	OpListAccounts:        bankOnly,
	OpEvaluateAccount:     bankOnly,
	OpBankFraudSignal:     bankOnly,
	OpBankAnomalies:       bankOnly,
	OpBankAnalytics:       bankOnly,

	OpBlacklistAdd:     blacklisters,
	OpBlacklistRemove:  blacklisters,
	OpBlacklistHistory: blacklisters,
	OpBlacklistList:    everyone,

	OpReadAuditLog: registryAdmins,
	OpViewStats:    everyone,
})

func build(src map[Operation][]domain.Role) map[Operation]map[domain.Role]bool {
	out := make(map[Operation]map[domain.Role]bool, len(src))
	for op, roles := range src {
		allowed := make(map[domain.Role]bool, len(roles))
		for _, r := range roles {
			allowed[r] = true
		}
		out[op] = allowed
	}
	return out
}

// Authorize reports whether role may invoke op. Unknown operations are denied.
func Authorize(role domain.Role, op Operation) bool {
	return table[op][role]
}

// Require fails with CodeUnauthorized when no actor is established and
// CodeForbidden when the actor's role may not invoke op.
func Require(actor domain.Actor, op Operation) error {
	if actor.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !Authorize(actor.Role, op) {
		return dErrors.New(dErrors.CodeForbidden, "role "+actor.Role.String()+" may not perform "+string(op))
	}
	return nil
}
