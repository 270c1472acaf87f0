// Package refcode generates short referral codes shared in invite links.
package refcode

import (
	"crypto/rand"
	"strings"

	googleuuid "github.com/google/uuid"
)

// alphabet deliberately omits 0/O and 1/I/L to keep codes readable when
// typed from a screenshot or voice message.
const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Length is the number of characters in a generated code.
const Length = 8

// New generates a random referral code. Codes are not guaranteed globally
// unique; callers must retry on a unique-constraint violation.
func New() string {
	var buf [Length]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback: derive a code from a UUID if the random source fails.
		u := strings.ToUpper(strings.ReplaceAll(googleuuid.New().String(), "-", ""))
		return u[:Length]
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf[:])
}

// IsValid reports whether s has the shape of a generated referral code.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
