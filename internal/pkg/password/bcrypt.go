package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored passwords
const DefaultCost = 10

// Service hashes and verifies passwords
type Service interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Hasher is a bcrypt backed Service
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. Costs outside bcrypt's range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of password
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A malformed hash is a mismatch.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var defaultHasher = NewHasher(DefaultCost)

// Hash hashes password at DefaultCost
func Hash(password string) (string, error) {
	return defaultHasher.Hash(password)
}

// Verify checks password against hash
func Verify(password, hash string) bool {
	return defaultHasher.Verify(password, hash)
}
