package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HashPassword hashes a password with the legacy scheme hex(sha256(password + secret)).
// Stored hashes in the users table were produced this way, so the scheme cannot change
// without a migration.
func HashPassword(password, secret string) string {
	sum := sha256.Sum256([]byte(password + secret))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password matches the stored legacy hash
func VerifyPassword(password, secret, storedHash string) bool {
	computed := HashPassword(password, secret)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(storedHash))) == 1
}
