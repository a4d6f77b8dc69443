// Package cryptox holds the password digest used by the credential store.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HashPassword returns the lowercase hex SHA-256 digest of password.
//
// The digest is deterministic and unsalted so that stores written by earlier
// releases keep verifying.
func HashPassword(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password hashes to digest. The comparison
// runs in constant time and ignores the case of the stored digest.
func VerifyPassword(password []byte, digest string) bool {
	got := HashPassword(password)
	want := strings.ToLower(strings.TrimSpace(digest))
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
