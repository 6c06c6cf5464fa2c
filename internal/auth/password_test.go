package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hashed)
	require.True(t, hasher.Verify("secret123", hashed))
	require.False(t, hasher.Verify("secret124", hashed))
	require.False(t, hasher.Verify("", hashed))
}

func TestPasswordHasherSaltsEachHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, hasher.Verify("secret123", first))
	require.True(t, hasher.Verify("secret123", second))
}

func TestPasswordHasherRejectsGarbageHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	require.False(t, hasher.Verify("secret123", "not-a-bcrypt-hash"))
}

func TestPasswordHasherOutOfRangeCost(t *testing.T) {
	hasher := NewPasswordHasher(99)
	require.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestPasswordHasherTooLong(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	_, err := hasher.Hash(strings.Repeat("a", 100))
	require.True(t, IsPasswordTooLong(err))
}
