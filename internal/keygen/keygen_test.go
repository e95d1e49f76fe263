package keygen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Run("length and alphabet", func(t *testing.T) {
		tok, err := NewToken()
		require.NoError(t, err)
		assert.Len(t, tok, TokenLength)
		for _, r := range tok {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
		}
	})

	t.Run("no repeats", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			tok, err := NewToken()
			require.NoError(t, err)
			require.False(t, seen[tok], "token %q generated twice", tok)
			seen[tok] = true
		}
	})
}

func TestMustToken(t *testing.T) {
	assert.Len(t, MustToken(), TokenLength)
}
