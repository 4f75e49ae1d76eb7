package domain

import (
	"strings"
	"time"
)

// Role governs which operations an account may invoke.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// ParseRole matches a role name case-insensitively.
func ParseRole(value string) (Role, bool) {
	for _, role := range []Role{RoleAdmin, RoleEditor, RoleViewer} {
		if strings.EqualFold(string(role), strings.TrimSpace(value)) {
			return role, true
		}
	}
	return "", false
}

// Account is an identity able to sign in.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
