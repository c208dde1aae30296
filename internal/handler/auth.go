package handler

import (
	"net/http"

	"fuelpos/internal/dto"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 429 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Users Handler ────────────────────────────────────────────────────────────

type UsersHandler struct{ svc service.AuthService }

func NewUsersHandler(svc service.AuthService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List godoc
// @Summary List user accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Router /v1/users [get]
func (h *UsersHandler) List(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Create godoc
// @Summary Create a user account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateUserRequest true "New user"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	log.Info().Str("username", user.Username).Str("role", user.Role).
		Str("by", actorFrom(c).Username).Msg("user created")
	c.JSON(http.StatusCreated, dto.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		Active:   user.Active,
	})
}

// ChangePassword godoc
// @Summary Reset a user's password
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param body body dto.ChangePasswordRequest true "Username and new password"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/users/password [post]
func (h *UsersHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	log.Info().Str("username", req.Username).Str("by", actorFrom(c).Username).Msg("password changed")
	c.Status(http.StatusNoContent)
}
