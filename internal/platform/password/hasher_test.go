package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestNewHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost int
		want int
	}{
		{"explicit cost", 10, 10},
		{"min cost", bcrypt.MinCost, bcrypt.MinCost},
		{"zero falls back to default", 0, bcrypt.DefaultCost},
		{"too high falls back to default", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewHasher(tt.cost).Cost())
		})
	}
}

func TestHasher_GenerateSalt(t *testing.T) {
	t.Parallel()

	h := newTestHasher()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		assert.Len(t, salt, SaltBytes*2)
		assert.Equal(t, strings.ToLower(salt), salt)
		_, dup := seen[salt]
		assert.False(t, dup, "salt repeated: %s", salt)
		seen[salt] = struct{}{}
	}
}

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := newTestHasher()
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	otherSalt, err := h.GenerateSalt()
	require.NoError(t, err)

	hash, err := h.Hash("Abcdef1!", salt)
	require.NoError(t, err)

	assert.True(t, h.Verify("Abcdef1!", hash, salt), "correct password and salt must verify")
	assert.False(t, h.Verify("Abcdef1?", hash, salt), "wrong password must not verify")
	assert.False(t, h.Verify("Abcdef1!", hash, otherSalt), "wrong salt must not verify")

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost, "hash embeds its cost")
}

func TestHasher_DifferentSaltsGiveDifferentHashes(t *testing.T) {
	t.Parallel()

	h := newTestHasher()
	passwords := []string{"Abcdef1!", "", "x", strings.Repeat("Long-Passw0rd!", 10)}

	for _, p := range passwords {
		s1, err := h.GenerateSalt()
		require.NoError(t, err)
		s2, err := h.GenerateSalt()
		require.NoError(t, err)

		h1, err := h.Hash(p, s1)
		require.NoError(t, err)
		h2, err := h.Hash(p, s2)
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2)
		assert.True(t, h.Verify(p, h1, s1))
		assert.False(t, h.Verify(p, h1, s2))
	}
}

func TestHasher_LongPasswordKeepsSalt(t *testing.T) {
	t.Parallel()

	h := newTestHasher()
	long := strings.Repeat("A1b!", 30)

	hash, err := h.Hash(long, "salt-one")
	require.NoError(t, err)

	assert.True(t, h.Verify(long, hash, "salt-one"))
	assert.False(t, h.Verify(long, hash, "salt-two"))
	assert.False(t, h.Verify(long+"x", hash, "salt-one"))
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := newTestHasher()

	assert.False(t, h.Verify("Abcdef1!", "", "salt"))
	assert.False(t, h.Verify("Abcdef1!", "not-a-bcrypt-hash", "salt"))
	assert.False(t, h.Verify("Abcdef1!", "$2a$10$short", "salt"))
}
