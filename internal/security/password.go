package security

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the fixed cost factor used across the platform.
const BcryptCost = 10

// HashPassword produces a salted one-way hash. The salt is generated per call
// and embedded in the output, so no separate salt storage exists.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares plaintext against a stored hash in constant time.
// A mismatch returns false, never an error.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// GenerateCode returns a fresh 6-digit numeric verification code.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in no state to continue.
		panic(fmt.Sprintf("security: generate code: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
