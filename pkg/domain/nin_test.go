package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ninhub/pkg/domain-errors"
)

func TestParseNIN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NIN
		wantErr bool
	}{
		{"registry format", "SL25123456", "SL25123456", false},
		{"lower case is normalised", " sl25000001 ", "SL25000001", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"oversized", strings.Repeat("A", 21), "", true},
		{"SQL injection attempt", "'; DROP TABLE citizens;--", "", true},
		{"Null byte", "SL25\x00123456", "", true},
		{"hyphen", "SL-25-123456", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNIN(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateNIN(t *testing.T) {
	pattern := regexp.MustCompile(`^SL26[1-9][0-9]{5}$`)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for range 50 {
		nin, err := GenerateNIN(now)
		require.NoError(t, err)
		assert.Regexp(t, pattern, nin.String())

		parsed, err := ParseNIN(nin.String())
		require.NoError(t, err)
		assert.Equal(t, nin, parsed)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []string{"super_admin", "ncra_admin", "bank_officer", "telecom_officer"} {
		role, err := ParseRole(r)
		require.NoError(t, err)
		assert.Equal(t, Role(r), role)
	}

	_, err := ParseRole("auditor")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseActorID(t *testing.T) {
	_, err := ParseActorID(" ")
	require.Error(t, err)

	id, err := ParseActorID("officer-17")
	require.NoError(t, err)
	assert.Equal(t, ActorID("officer-17"), id)
}
