package dto

import (
	"time"

	"github.com/spec-kit/music-library/internal/domain"
)

// CredentialsRequest is the payload of signup and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateUserRequest is the payload of POST /users/add-user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdatePasswordRequest is the payload of PUT /users/update-password.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateRoleRequest is the payload of PUT /users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// AccountResponse never carries the credential hash.
type AccountResponse struct {
	ID        string      `json:"user_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewAccountResponse converts a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	}
}
