// Package service implements the domain services of the users feature:
// user creation, authentication and update-time validation.
package service

import "users_backend/internal/feature/users/domain/valueobject"

// PasswordHasher turns plaintext passwords into opaque hashes and checks them.
// Implementations must be slow, salted and adaptive.
type PasswordHasher interface {
	// Hash fails when the password is empty.
	Hash(password valueobject.PlaintextPassword) (valueobject.PasswordHash, error)

	// Verify reports whether password matches hash. It returns false instead
	// of failing on empty input or a malformed hash.
	Verify(password valueobject.PlaintextPassword, hash valueobject.PasswordHash) bool
}
