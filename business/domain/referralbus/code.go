package referralbus

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// CodeLength is the number of characters in a referral code.
const CodeLength = 8

// codeAlphabet leaves out characters that are easy to misread: 0, O, 1, I.
// Its length is a power of two so masking a random byte is unbiased.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewCode generates a random referral code.
func NewCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)&(len(codeAlphabet)-1)]
	}

	return string(buf), nil
}

// NormalizeCode returns the canonical form of a code typed by a person.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code has the shape of a generated code.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}

	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return false
		}
	}

	return true
}
