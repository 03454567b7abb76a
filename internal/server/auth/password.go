package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor used when the configured cost is zero.
// bcrypt embeds a random salt per hash, so hashing the same password twice
// yields different values.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies login passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check reports whether plaintext matches hash. It returns false for a
// malformed hash rather than an error, so callers cannot distinguish a
// corrupt stored hash from a wrong password.
func (h *PasswordHasher) Check(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
