// Package id generates the public identifiers handed out to API clients.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Length of every identifier produced by NewID32.
const Length = 32

// NewID32 returns 128 random bits as 32 lowercase hex characters.
func NewID32() string {
	var b [Length / 2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic("id: reading random bytes: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// IsID32 reports whether s has the shape NewID32 produces.
func IsID32(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
