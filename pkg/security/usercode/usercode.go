// Package usercode derives short opaque public identifiers for new
// users. Codes are salted with fresh randomness on every call, so the
// same username yields different codes across calls; uniqueness of the
// stored code is the database's job, not this package's.
package usercode

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

const (
	codeLength = 7
	saltLength = 16 // 128-bit salt
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generator produces user codes keyed by the process secret.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	return &Generator{secret: []byte(secret)}
}

// Generate returns a 7-character code over A-Z0-9. The digest is
// HMAC-SHA256 over the username finalized with a random salt; each of
// the first 7 digest bytes maps onto the 36-symbol alphabet by modulo.
// An empty username is accepted and still yields a full-length code.
func (g *Generator) Generate(username string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(username))
	mac.Write(salt)
	digest := mac.Sum(nil)

	code := make([]byte, codeLength)
	for i := 0; i < codeLength; i++ {
		code[i] = alphabet[int(digest[i])%len(alphabet)]
	}
	return string(code), nil
}
