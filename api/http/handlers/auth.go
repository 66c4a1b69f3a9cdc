package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/central/authentication-service/api/http/presenter"
	"github.com/central/authentication-service/pkg/auth"
	"github.com/central/authentication-service/pkg/user"
)

type AuthHandler struct {
	useCase auth.UseCase
}

func NewAuthHandler(useCase auth.UseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} auth.LoginResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrUserNotFound):
			return presenter.Error(c, http.StatusNotFound, "user not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusUnauthorized, "the email address or password you entered is incorrect")
		default:
			log.Printf("login failed: %v", err)
			return presenter.Error(c, http.StatusInternalServerError, "failed to login")
		}
	}

	return presenter.JSON(c, http.StatusOK, result)
}

// Validate handles token validation.
// @Summary Validate access token
// @Tags    auth
// @Produce json
// @Param   Authorization header string true "Bearer token"
// @Success 200
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if err := h.useCase.ValidateToken(c.Context(), header); err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "missing or invalid Authorization header")
	}
	return c.SendStatus(http.StatusOK)
}
