// Package password provides salted password hashing on top of bcrypt.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SaltBytes is the amount of entropy in a generated salt.
const SaltBytes = 16

// Hasher hashes and verifies salted passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the bcrypt cost used for new hashes.
func (h *Hasher) Cost() int {
	return h.cost
}

// GenerateSalt returns SaltBytes of randomness encoded as lowercase hex.
func (h *Hasher) GenerateSalt() (string, error) {
	b := make([]byte, SaltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash returns the bcrypt hash of password concatenated with salt.
func (h *Hasher) Hash(password, salt string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(password, salt), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password and salt match hash.
// A malformed hash is treated as a mismatch.
func (h *Hasher) Verify(password, hash, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password, salt)) == nil
}

// prehash keeps the bcrypt input at a fixed 64 bytes so that neither a long
// password nor the salt is cut off by bcrypt's 72-byte limit.
func prehash(password, salt string) []byte {
	sum := sha256.Sum256([]byte(password + salt))
	dst := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(dst, sum[:])
	return dst
}
