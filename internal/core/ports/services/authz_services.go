package services

import "github.com/bankgold/bankgold/internal/core/domain"

// AuthzSvc answers the three gating questions of every handler: is the caller
// an admin, is it the super admin, does its role include a permission.
type AuthzSvc interface {
	IsAdmin(id string) bool
	IsSuperAdmin(id string) bool
	HasPermission(id string, p domain.Permission) bool
	RoleOf(id string) (domain.Role, bool)

	// AddAdmin assigns a role to an identity. Super-admin only; duplicates rejected.
	AddAdmin(actorID, id string, role domain.Role) error

	// RemoveAdmin drops an identity from the role table. The super admin
	// cannot be removed.
	RemoveAdmin(actorID, id string) error
}
