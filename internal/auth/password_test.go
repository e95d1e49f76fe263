package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	t.Run("verify accepts the original plaintext", func(t *testing.T) {
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)
		assert.True(t, hasher.Verify("correct horse battery staple", hash))
	})

	t.Run("verify rejects anything else", func(t *testing.T) {
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.False(t, hasher.Verify("wrong", hash))
		assert.False(t, hasher.Verify("", hash))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		a, err := hasher.Hash("same input")
		require.NoError(t, err)
		b, err := hasher.Hash("same input")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("over-long input fails rather than truncating silently", func(t *testing.T) {
		long := make([]byte, 100)
		for i := range long {
			long[i] = 'a'
		}
		_, err := hasher.Hash(string(long))
		assert.Error(t, err)
	})
}
