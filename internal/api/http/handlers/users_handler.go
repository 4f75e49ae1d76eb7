package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/dto"
	"github.com/spec-kit/music-library/internal/service"
)

// UsersHandler exposes account administration endpoints.
type UsersHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{users: userService, auth: authService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	limit, offset, err := parsePage(c)
	if err != nil {
		return err
	}
	accounts, err := h.users.List(c.UserContext(), service.UserFilter{
		Role:   c.Query("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, dto.NewAccountResponse(&accounts[i]))
	}
	return respond(c, http.StatusOK, "Users retrieved successfully.", items)
}

// Create handles POST /users/add-user.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	account, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User created successfully.", dto.NewAccountResponse(account))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User deleted successfully.", nil)
}

// UpdatePassword handles PUT /users/update-password for the caller's own account.
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), identity.AccountID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password updated successfully.", nil)
}

// UpdateRole handles PUT /users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	account, err := h.users.UpdateRole(c.UserContext(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User role updated successfully.", dto.NewAccountResponse(account))
}
