// Package password provides the hashing capability used by account
// registration and login. The digest format is bcrypt; callers only see the
// hash/verify pair.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a bcrypt digest from a plaintext password.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the stored digest.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
