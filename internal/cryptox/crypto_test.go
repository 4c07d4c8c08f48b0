package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, salt := HashPassword([]byte("secret1"))
	require.Len(t, hash, KeySize)
	require.Len(t, salt, SaltSize)

	assert.True(t, VerifyPassword(hash, salt, []byte("secret1")))
	assert.False(t, VerifyPassword(hash, salt, []byte("secret2")))
	assert.False(t, VerifyPassword(hash, []byte("other-salt-value"), []byte("secret1")))
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, s1 := HashPassword([]byte("same"))
	h2, s2 := HashPassword([]byte("same"))
	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	assert.Equal(t, DeriveKey([]byte("pw"), salt), DeriveKey([]byte("pw"), salt))
}
