package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Afridi123", 4) // low cost keeps the test fast
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Afridi123", hash, "password must never be stored in plain text")

	assert.True(t, VerifyPassword(hash, "Afridi123"))
	assert.False(t, VerifyPassword(hash, "afridi123"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("secret", 4)
	require.NoError(t, err)
	h2, err := HashPassword("secret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "bcrypt salts each hash")
}
