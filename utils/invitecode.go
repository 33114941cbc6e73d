// utils/invitecode.go
package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

// Alphabet excludes visually ambiguous characters (0, O, I, 1).
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var inviteCodeRegex = regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// GenerateInviteCode returns a fresh XXXX-XXXX code. Each character is drawn
// independently, so collisions are possible; callers must check against
// existing codes before persisting.
func GenerateInviteCode() string {
	var b strings.Builder
	b.Grow(9)
	for i := 0; i < 8; i++ {
		if i == 4 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			panic("failed to read random bytes for invite code")
		}
		b.WriteByte(inviteCodeAlphabet[n.Int64()])
	}
	return b.String()
}

// IsValidInviteCode checks the fixed format. Case-sensitive: expects
// upper-case input, normalize first.
func IsValidInviteCode(code string) bool {
	return inviteCodeRegex.MatchString(code)
}

// NormalizeInviteCode trims whitespace and upper-cases user-supplied codes
// before validation and lookup.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
