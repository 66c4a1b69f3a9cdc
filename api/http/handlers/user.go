package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/central/authentication-service/api/http/presenter"
	"github.com/central/authentication-service/pkg/user"
)

type UserHandler struct {
	useCase user.UseCase
}

func NewUserHandler(useCase user.UseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

// Create handles user creation.
// @Summary Create user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body user.CreateUserCommand true "user payload"
// @Success 201 {object} user.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var cmd user.CreateUserCommand
	if err := c.BodyParser(&cmd); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	profile, err := h.useCase.Create(c.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrProvisioningFailed):
			return presenter.Error(c, http.StatusInternalServerError, "failed to create wallet for user, please try again later")
		default:
			log.Printf("create user failed: %v", err)
			return presenter.Error(c, http.StatusInternalServerError, "failed to create user")
		}
	}

	return presenter.JSON(c, http.StatusCreated, profile)
}

// GetByUserCode returns the public profile for a user code.
// @Summary Get user by code
// @Tags    users
// @Produce json
// @Param   userCode path string true "user code"
// @Success 200 {object} user.Profile
// @Failure 404 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /users/{userCode} [get]
func (h *UserHandler) GetByUserCode(c *fiber.Ctx) error {
	userCode := c.Params("userCode")

	profile, err := h.useCase.GetByUserCode(c.Context(), userCode)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "user not found")
		}
		log.Printf("get user failed: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "failed to fetch user")
	}

	return presenter.JSON(c, http.StatusOK, profile)
}

// Search finds users by username and/or email.
// @Summary Search users
// @Tags    users
// @Produce json
// @Param   username query string false "username (exact match)"
// @Param   email    query string false "email (exact match)"
// @Success 200 {array} user.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /users [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	username := c.Query("username")
	email := c.Query("email")

	profiles, err := h.useCase.Search(c.Context(), username, email)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "no users match the search criteria")
		default:
			log.Printf("search users failed: %v", err)
			return presenter.Error(c, http.StatusInternalServerError, "failed to search users")
		}
	}

	return presenter.JSON(c, http.StatusOK, profiles)
}
