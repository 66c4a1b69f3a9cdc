package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/central/authentication-service/pkg/user"
)

// bearerPrefix is the required scheme for tokens presented to
// ValidateToken. Stripping the scheme is the gateway's responsibility;
// the verifier only ever sees bare tokens.
const bearerPrefix = "Bearer "

// Common errors used by the authentication gateway
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// LoginResult carries the issued access token and its lifetime in
// seconds.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// UseCase describes authentication behavior: credential verification and
// token validation.
type UseCase interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	ValidateToken(ctx context.Context, header string) error
}

type gateway struct {
	repo     user.Repository
	issuer   TokenIssuer
	verifier TokenVerifier
}

// NewGateway returns the default implementation of UseCase.
func NewGateway(repo user.Repository, issuer TokenIssuer, verifier TokenVerifier) UseCase {
	return &gateway{repo: repo, issuer: issuer, verifier: verifier}
}

func (g *gateway) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if strings.TrimSpace(email) == "" {
		return LoginResult{}, fmt.Errorf("%w: email address is required", user.ErrInvalidInput)
	}
	if password == "" {
		return LoginResult{}, fmt.Errorf("%w: password is required", user.ErrInvalidInput)
	}

	u, err := g.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			log.Printf("login failed, no user for email")
			return LoginResult{}, ErrUserNotFound
		}
		return LoginResult{}, fmt.Errorf("find by email: %w", err)
	}

	// Generic failure on mismatch: the caller must not be able to tell
	// whether the email or the password was wrong.
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := g.issuer.Generate(u.UserCode, string(u.Role))
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	log.Printf("user authenticated: userCode=%s", u.UserCode)
	return LoginResult{
		AccessToken: token,
		ExpiresIn:   int64(g.issuer.TTL().Seconds()),
	}, nil
}

// ValidateToken checks a presented Authorization value. The Bearer
// scheme is mandatory here; a missing or malformed prefix fails the same
// way as a bad signature or an expired token.
func (g *gateway) ValidateToken(ctx context.Context, header string) error {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return ErrInvalidToken
	}
	if err := g.verifier.Verify(token); err != nil {
		log.Printf("token validation failed: %v", err)
		return ErrInvalidToken
	}
	return nil
}
