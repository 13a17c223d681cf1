// Package service defines domain service interfaces implemented by the
// infrastructure layer.
package service

// PasswordHasher abstracts password hashing so the usecase layer does not
// depend on a concrete algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool
}
