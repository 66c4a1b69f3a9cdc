package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/central/authentication-service/api/http"
	"github.com/central/authentication-service/api/http/handlers"
	"github.com/central/authentication-service/pkg/auth"
	"github.com/central/authentication-service/pkg/health"
	"github.com/central/authentication-service/pkg/security/jwt"
	"github.com/central/authentication-service/pkg/user"
)

type fakeAuthUC struct {
	loginResult auth.LoginResult
	loginErr    error
	validateErr error
}

func (f *fakeAuthUC) Login(ctx context.Context, email, password string) (auth.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthUC) ValidateToken(ctx context.Context, header string) error {
	return f.validateErr
}

type fakeUserUC struct {
	profile   user.Profile
	profiles  []user.Profile
	createErr error
	getErr    error
	searchErr error
}

func (f *fakeUserUC) Create(ctx context.Context, cmd user.CreateUserCommand) (user.Profile, error) {
	return f.profile, f.createErr
}

func (f *fakeUserUC) GetByUserCode(ctx context.Context, userCode string) (user.Profile, error) {
	return f.profile, f.getErr
}

func (f *fakeUserUC) Search(ctx context.Context, username, email string) ([]user.Profile, error) {
	return f.profiles, f.searchErr
}

type okChecker struct{}

func (okChecker) Name() string                    { return "ok" }
func (okChecker) Check(ctx context.Context) error { return nil }

var testCodec = jwt.NewCodec("handler-test-secret", "authentication-service", time.Hour)

func newTestApp(authUC auth.UseCase, userUC user.UseCase) *fiber.App {
	app := fiber.New()
	apihttp.Register(app,
		handlers.NewAuthHandler(authUC),
		handlers.NewUserHandler(userUC),
		handlers.NewHealthHandler(health.NewService(okChecker{})),
		jwt.NewAuthMiddleware(testCodec),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string, header map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{loginResult: auth.LoginResult{AccessToken: "tok", ExpiresIn: 900}}, &fakeUserUC{})
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.com","password":"p"}`, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out auth.LoginResult
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "tok", out.AccessToken)
		assert.Equal(t, int64(900), out.ExpiresIn)
	})

	t.Run("unknown email", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{loginErr: auth.ErrUserNotFound}, &fakeUserUC{})
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.com","password":"p"}`, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad password", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{loginErr: auth.ErrInvalidCredentials}, &fakeUserUC{})
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.com","password":"p"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.NotContains(t, string(body), "password was wrong")
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{}, &fakeUserUC{})
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestValidateEndpoint(t *testing.T) {
	app := newTestApp(&fakeAuthUC{}, &fakeUserUC{})
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/auth/validate", "", map[string]string{"Authorization": "Bearer abc"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app = newTestApp(&fakeAuthUC{validateErr: auth.ErrInvalidToken}, &fakeUserUC{})
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/auth/validate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateUserEndpoint(t *testing.T) {
	payload := `{"username":"john_doe","email":"john@example.com","password":"p"}`

	t.Run("created", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{}, &fakeUserUC{profile: user.Profile{Username: "john_doe", Email: "john@example.com", Role: user.RoleUser}})
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/users/", payload, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var out user.Profile
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, user.RoleUser, out.Role)
	})

	t.Run("invalid input", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{}, &fakeUserUC{createErr: user.ErrInvalidInput})
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/users/", payload, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("provisioning failed", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{}, &fakeUserUC{createErr: user.ErrProvisioningFailed})
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/users/", payload, nil)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		// Generic message only; no collaborator detail crosses the boundary.
		assert.NotContains(t, string(body), "timeout")
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(&fakeAuthUC{}, &fakeUserUC{profile: user.Profile{Username: "john_doe"}})

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/users/AB12CD3", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := testCodec.Generate("AB12CD3", "USER")
	require.NoError(t, err)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/AB12CD3", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The route middleware also accepts the bare token form.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/AB12CD3", "", map[string]string{"Authorization": token})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	token, err := testCodec.Generate("AB12CD3", "USER")
	require.NoError(t, err)
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	t.Run("no criteria", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{}, &fakeUserUC{searchErr: user.ErrInvalidInput})
		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/users/", "", authHeader)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("results", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{}, &fakeUserUC{profiles: []user.Profile{{Username: "john_doe"}}})
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/users/?username=john_doe", "", authHeader)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out []user.Profile
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Len(t, out, 1)
	})

	t.Run("empty result", func(t *testing.T) {
		app := newTestApp(&fakeAuthUC{}, &fakeUserUC{searchErr: user.ErrNotFound})
		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/users/?email=x@y.com", "", authHeader)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(&fakeAuthUC{}, &fakeUserUC{})

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
