package auth

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// bcryptCost is deliberately above the library default to resist offline
// brute force.
const bcryptCost = 12

// HashPassword turns a plaintext password into a salted bcrypt hash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
// Malformed hashes are treated as a verification failure, never an error;
// bcrypt's comparison is constant-time.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
