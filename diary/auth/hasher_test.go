package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("sup3r-Secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"), "hash should be PHC encoded, got %v", hash)
	assert.NotContains(t, hash, "sup3r-Secret")

	require.NoError(t, VerifyPassword(hash, "sup3r-Secret"))
	assert.Error(t, VerifyPassword(hash, "sup3r-secret"))
	assert.Error(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSaltsEveryHash(t *testing.T) {
	h1, err := HashPassword("same-Password1!")
	require.NoError(t, err)
	h2, err := HashPassword("same-Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	require.NoError(t, VerifyPassword(h1, "same-Password1!"))
	require.NoError(t, VerifyPassword(h2, "same-Password1!"))
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	for _, stored := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",    // wrong algorithm
		"$argon2id$vXX$m=65536,t=1,p=4$c2FsdA$aGFzaA",    // broken version
		"$argon2id$v=19$m=banana$c2FsdA$aGFzaA",          // broken params
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",      // broken salt encoding
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!",      // broken key encoding
	} {
		err := VerifyPassword(stored, "whatever")
		assert.Error(t, err, "stored hash %q should be rejected", stored)
	}
}
