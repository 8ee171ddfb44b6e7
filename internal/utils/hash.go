package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor used for password hashing.
const bcryptCost = 10

// HashPassword computes a bcrypt hash of the given plaintext password.
//
// Returns an error if the password exceeds bcrypt's 72-byte input limit or
// hashing otherwise fails.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashRecoveryCode computes the hex-encoded SHA-256 digest of a normalized
// recovery code. Recovery codes are high-entropy machine-generated secrets,
// so a plain digest (no salt, no KDF) is sufficient and keeps consumption a
// single indexed lookup.
func HashRecoveryCode(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
