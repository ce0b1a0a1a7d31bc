// Package security provides password hashing backed by bcrypt.
package security

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"users_backend/internal/feature/users/domain/service"
	"users_backend/internal/feature/users/domain/valueobject"
)

// EnvKeyBcryptCost overrides the bcrypt work factor.
const EnvKeyBcryptCost = "BCRYPT_COST"

// ErrEmptyPassword is returned by Hash for an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// BcryptHasher implements service.PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

var _ service.PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher returns a hasher using cost. Out of range values fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// NewBcryptHasherFromEnv reads BCRYPT_COST and falls back to bcrypt.DefaultCost.
func NewBcryptHasherFromEnv() *BcryptHasher {
	cost, err := strconv.Atoi(os.Getenv(EnvKeyBcryptCost))
	if err != nil {
		cost = bcrypt.DefaultCost
	}
	return NewBcryptHasher(cost)
}

// Hash returns a salted bcrypt hash. Two calls with the same input yield different hashes.
func (h *BcryptHasher) Hash(password valueobject.PlaintextPassword) (valueobject.PasswordHash, error) {
	raw := password.Reveal()
	if strings.TrimSpace(raw) == "" {
		return valueobject.PasswordHash{}, ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return valueobject.PasswordHash{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return valueobject.NewPasswordHash(string(hashed))
}

// Verify compares password with hash. Empty input and malformed hashes yield false.
func (h *BcryptHasher) Verify(password valueobject.PlaintextPassword, hash valueobject.PasswordHash) bool {
	raw := password.Reveal()
	if strings.TrimSpace(raw) == "" || hash.IsZero() {
		return false
	}
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	return bcrypt.CompareHashAndPassword([]byte(hash.String()), []byte(raw)) == nil
}
