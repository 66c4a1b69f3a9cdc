package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/central/authentication-service/pkg/user"
)

type fakeRepo struct {
	byEmail map[string]user.User
}

func (f *fakeRepo) Create(ctx context.Context, u user.User) error          { return nil }
func (f *fakeRepo) Delete(ctx context.Context, userCode string) error      { return nil }
func (f *fakeRepo) FindByUserCode(ctx context.Context, c string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (f *fakeRepo) FindByUsername(ctx context.Context, u string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeRepo) FindByUsernameAndEmail(ctx context.Context, un, em string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (f *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeIssuer struct {
	token string
	err   error
}

func (f *fakeIssuer) Generate(userCode, role string) (string, error) { return f.token, f.err }
func (f *fakeIssuer) TTL() time.Duration                             { return 15 * time.Minute }

type fakeVerifier struct{ err error }

func (f *fakeVerifier) Verify(token string) error { return f.err }

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginSuccess(t *testing.T) {
	repo := &fakeRepo{byEmail: map[string]user.User{
		"lucy@example.com": {
			UserCode:     "AB12CD3",
			Email:        "lucy@example.com",
			PasswordHash: hash(t, "s3cret-pass"),
			Role:         user.RoleUser,
		},
	}}
	gw := NewGateway(repo, &fakeIssuer{token: "signed-token"}, &fakeVerifier{})

	result, err := gw.Login(context.Background(), "lucy@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.AccessToken)
	assert.Equal(t, int64(900), result.ExpiresIn)
}

func TestLoginUnknownEmail(t *testing.T) {
	gw := NewGateway(&fakeRepo{byEmail: map[string]user.User{}}, &fakeIssuer{}, &fakeVerifier{})

	_, err := gw.Login(context.Background(), "missing@x.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeRepo{byEmail: map[string]user.User{
		"lucy@example.com": {
			UserCode:     "AB12CD3",
			Email:        "lucy@example.com",
			PasswordHash: hash(t, "right-password"),
			Role:         user.RoleUser,
		},
	}}
	gw := NewGateway(repo, &fakeIssuer{token: "signed-token"}, &fakeVerifier{})

	_, err := gw.Login(context.Background(), "lucy@example.com", "wrong-password")
	// The error must not reveal which of email/password was wrong.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotContains(t, err.Error(), "password")
	assert.NotContains(t, err.Error(), "email")
}

func TestLoginEmptyFields(t *testing.T) {
	gw := NewGateway(&fakeRepo{}, &fakeIssuer{}, &fakeVerifier{})

	_, err := gw.Login(context.Background(), "", "pass")
	assert.ErrorIs(t, err, user.ErrInvalidInput)

	_, err = gw.Login(context.Background(), "lucy@example.com", "")
	assert.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestValidateTokenRequiresBearerScheme(t *testing.T) {
	gw := NewGateway(&fakeRepo{}, &fakeIssuer{}, &fakeVerifier{})

	for _, header := range []string{"", "abc.def.ghi", "Basic abc", "bearer abc.def.ghi", "Bearer ", "Bearer"} {
		err := gw.ValidateToken(context.Background(), header)
		assert.ErrorIs(t, err, ErrInvalidToken, "header %q", header)
	}
}

func TestValidateTokenDelegatesBareToken(t *testing.T) {
	gw := NewGateway(&fakeRepo{}, &fakeIssuer{}, &fakeVerifier{})
	assert.NoError(t, gw.ValidateToken(context.Background(), "Bearer abc.def.ghi"))

	failing := NewGateway(&fakeRepo{}, &fakeIssuer{}, &fakeVerifier{err: errors.New("bad signature")})
	assert.ErrorIs(t, failing.ValidateToken(context.Background(), "Bearer abc.def.ghi"), ErrInvalidToken)
}
