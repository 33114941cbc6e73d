package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInviteCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateInviteCode()
		assert.Len(t, code, 9)
		assert.True(t, IsValidInviteCode(code), "generated code %q should be valid", code)
		for _, ambiguous := range []string{"0", "O", "I", "1"} {
			assert.NotContains(t, code, ambiguous)
		}
	}
}

func TestGenerateInviteCodeEntropy(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateInviteCode()] = true
	}
	// Probabilistic floor, not a uniqueness guarantee
	assert.GreaterOrEqual(t, len(seen), 95)
}

func TestIsValidInviteCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"ABCD-EFGH", true},
		{"AB23-9ZYX", true},
		{"A1B2-C3D4", true}, // format check only; alphabet is a generation concern
		{"abcd-efgh", false},
		{"ABCDEFGH", false},
		{"ABC-DEFGH", false},
		{"ABCD-EFG", false},
		{"ABCD_EFGH", false},
		{"", false},
		{" ABCD-EFGH", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidInviteCode(tt.code))
		})
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	assert.Equal(t, "ABCD-2345", NormalizeInviteCode("  abcd-2345 "))
	assert.Equal(t, "ABCD-2345", NormalizeInviteCode("ABCD-2345"))
	assert.True(t, IsValidInviteCode(NormalizeInviteCode("abcd-2345")))
	assert.Equal(t, strings.ToUpper("wxyz-5678"), NormalizeInviteCode("wxyz-5678"))
}
