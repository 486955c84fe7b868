package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Aa1!aaaa")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Aa1!aaaa", hash, "hash must not be the plaintext")

	assert.True(t, CheckPassword("Aa1!aaaa", hash))
	assert.False(t, CheckPassword("Aa1!aaab", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	// Garbage hashes are a verification failure, never a panic or error
	assert.False(t, CheckPassword("whatever", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("whatever", ""))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ")
}
