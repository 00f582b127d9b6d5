package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password using bcrypt with the given cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashToken hashes an opaque token for storage. Tokens are pre-hashed with
// SHA-256 because bcrypt only considers the first 72 bytes.
func HashToken(token string, cost int) (string, error) {
	return HashPassword(digest(token), cost)
}

// CheckTokenHash compares a token with a hash produced by HashToken.
func CheckTokenHash(token, hash string) bool {
	return CheckPasswordHash(digest(token), hash)
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// IsEmail returns true if the string is a bare email address.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
