package subscription

import "math/rand"

// tokenAlphabet is the case-sensitive alphanumeric alphabet (62 symbols).
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TokenLength is the fixed length of a confirmation token.
const TokenLength = 25

// TokenSource produces confirmation tokens. The service takes it as a
// dependency so tests can substitute a deterministic source.
type TokenSource interface {
	Token() string
}

// RandomTokenSource draws tokens uniformly from the alphanumeric alphabet.
// Tokens are unguessable enough for a confirmation link; they are not
// credentials and do not need a cryptographic source.
type RandomTokenSource struct{}

// Token returns a fresh 25-character token. It never fails.
func (RandomTokenSource) Token() string {
	b := make([]byte, TokenLength)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}
