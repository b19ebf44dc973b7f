package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"strings"

	dErrors "ninhub/pkg/domain-errors"
)

// simPrefixes are the network prefixes allocated to mobile operators.
var simPrefixes = []string{"072", "073", "074", "075", "076", "078", "079"}

const (
	simLength         = 9
	accountPrefix     = "UBA-"
	accountDigits     = 10
	accountNumberSize = len(accountPrefix) + accountDigits
)

// ParsePhoneNumber validates a SIM key: exactly nine digits starting with an
// allocated prefix.
func ParsePhoneNumber(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != simLength || !allDigits(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "phone number must be exactly 9 digits")
	}
	if !slices.Contains(simPrefixes, s[:3]) {
		return "", dErrors.New(dErrors.CodeInvalidInput,
			"phone number must start with one of "+strings.Join(simPrefixes, ", "))
	}
	return s, nil
}

// ParseAccountNumber validates a BANK key of the form UBA-NNNNNNNNNN.
func ParseAccountNumber(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != accountNumberSize || !strings.HasPrefix(s, accountPrefix) || !allDigits(s[len(accountPrefix):]) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "account number must be UBA- followed by 10 digits")
	}
	return s, nil
}

// ValidateKey dispatches to the domain's key format.
func ValidateKey(d Domain, key string) (string, error) {
	switch d {
	case DomainSIM:
		return ParsePhoneNumber(key)
	case DomainBank:
		return ParseAccountNumber(key)
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown domain: "+d.String())
	}
}

// GenerateAccountNumber returns a random UBA- account number.
func GenerateAccountNumber() (string, error) {
	limit := big.NewInt(10_000_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%s%010d", accountPrefix, n.Int64()), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
