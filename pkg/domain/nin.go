package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	dErrors "ninhub/pkg/domain-errors"
)

// maxNINLength bounds identifiers accepted at trust boundaries.
const maxNINLength = 20

// NIN is a National Identification Number.
// Invariant: non-empty, at most 20 characters, upper-case ASCII letters and digits.
//
// Construct via ParseNIN at trust boundaries; direct casting bypasses validation.
type NIN string

// ParseNIN normalises and validates a NIN from external input.
func ParseNIN(s string) (NIN, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "nin is required")
	}
	if len(s) > maxNINLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("nin must be at most %d characters", maxNINLength))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", dErrors.New(dErrors.CodeInvalidInput, "nin must contain only letters and digits")
		}
	}
	return NIN(s), nil
}

func (n NIN) String() string {
	return string(n)
}

func (n NIN) IsNil() bool {
	return n == ""
}

// GenerateNIN issues a NIN in the registry format: "SL", the two-digit year of
// issue, then six random digits (100000-999999).
func GenerateNIN(now time.Time) (NIN, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate nin: %w", err)
	}
	return NIN(fmt.Sprintf("SL%02d%06d", now.Year()%100, n.Int64()+100000)), nil
}
