package auth

import (
	"slices"

	"github.com/spec-kit/music-library/internal/domain"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

// Policy lists the roles allowed on a route. An empty role list admits any
// authenticated caller.
type Policy struct {
	Name  string
	Roles []domain.Role
}

var (
	Authenticated  = Policy{Name: "authenticated"}
	CatalogWriters = Policy{Name: "catalog-writers", Roles: []domain.Role{domain.RoleAdmin, domain.RoleEditor}}
	AdminsOnly     = Policy{Name: "admins-only", Roles: []domain.Role{domain.RoleAdmin}}
)

// Authorize checks identity against the policy.
func (p Policy) Authorize(identity *Identity) error {
	if identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if len(p.Roles) == 0 || slices.Contains(p.Roles, identity.Role) {
		return nil
	}
	return apperrors.NewForbidden("insufficient role")
}
