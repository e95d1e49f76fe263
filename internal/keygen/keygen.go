// Package keygen produces the opaque bearer tokens used as list keys and
// session tokens. Tokens come from crypto/rand; they are credentials, not
// identifiers, and must never be guessable.
package keygen

import (
	"crypto/rand"
	"math/big"
)

// TokenLength is the character length of every generated token.
const TokenLength = 32

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewToken returns a new random token of TokenLength characters drawn from a
// 62-character alphanumeric alphabet (~190 bits of entropy).
func NewToken() (string, error) {
	buf := make([]byte, TokenLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}

// MustToken is NewToken for call sites that cannot usefully recover from a
// broken system randomness source.
func MustToken() string {
	tok, err := NewToken()
	if err != nil {
		panic("keygen: " + err.Error())
	}
	return tok
}
