package auth

import "time"

// TokenIssuer abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Generate(userCode, role string) (string, error)
	TTL() time.Duration
}

// TokenVerifier abstracts signature and expiry verification of a bare
// (scheme-stripped) token.
type TokenVerifier interface {
	Verify(token string) error
}
