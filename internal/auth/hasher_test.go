package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Secret1x")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1x", hash)

	ok, err := hasher.Verify("Secret1x", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasherMismatch(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Secret1x")
	require.NoError(t, err)

	ok, err := hasher.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherEmptyPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash("")
	assert.Error(t, err)
}

func TestBcryptHasherInvalidHash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	ok, err := hasher.Verify("Secret1x", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherSaltsDiffer(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash1, err := hasher.Hash("Secret1x")
	require.NoError(t, err)
	hash2, err := hasher.Hash("Secret1x")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
