package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, expired token, wrong signing method. Callers are
// not given a way to distinguish the reasons; the detail is for logs.
var ErrInvalidToken = errors.New("invalid or expired token")

// Codec signs and verifies access tokens (HS256). The secret is loaded
// once at startup and never mutated afterwards.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims includes the registered claims plus the user code and role.
type Claims struct {
	jwt.RegisteredClaims
	UserCode string `json:"userCode"`
	Role     string `json:"role"`
}

// TTL reports the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Generate issues a signed token for the given user code and role.
// Claims are fixed at issue time: exp is always iat plus the configured
// TTL.
func (c *Codec) Generate(userCode, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   userCode,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserCode: userCode,
		Role:     role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Validate verifies the token signature and expiry and returns the
// parsed claims. Any failure maps to ErrInvalidToken.
func (c *Codec) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if c.issuer != "" && claims.Issuer != c.issuer {
		return nil, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}
	return claims, nil
}

// Verify checks the token and discards the claims.
func (c *Codec) Verify(tokenStr string) error {
	_, err := c.Validate(tokenStr)
	return err
}
