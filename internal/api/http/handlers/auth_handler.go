package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/dto"
	"github.com/spec-kit/music-library/internal/auth"
	"github.com/spec-kit/music-library/internal/service"
)

// AuthHandler exposes signup, login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	account, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User created successfully.", dto.NewAccountResponse(account))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Login successful.", dto.AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles GET|POST /auth/logout. The guard has already verified the token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c)
	if err != nil {
		return err
	}
	if err := h.auth.Invalidate(c.UserContext(), token); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User logged out successfully.", nil)
}
