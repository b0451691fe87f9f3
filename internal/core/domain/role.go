package domain

// Role is a named permission set assignable to an admin identity.
type Role string

const (
	RoleAccounting Role = "accounting"
	RoleStore      Role = "store"
	RoleGeneral    Role = "general"
)

// Permission names one gated command family.
type Permission string

const (
	PermCreate     Permission = "create"
	PermLink       Permission = "link"
	PermTransfer   Permission = "transfer"
	PermBalance    Permission = "balance"
	PermArchive    Permission = "archive"
	PermDeduct     Permission = "deduct"
	PermAdd        Permission = "add"
	PermSetBalance Permission = "set-balance"
	PermBan        Permission = "ban"
	PermUnban      Permission = "unban"
	PermListBanned Permission = "list-banned"
)

// rolePermissions is the static role table. The general role is the union of
// accounting and store plus the ban family.
var rolePermissions = map[Role][]Permission{
	RoleAccounting: {PermCreate, PermLink, PermTransfer, PermBalance, PermArchive},
	RoleStore:      {PermDeduct, PermAdd, PermSetBalance},
	RoleGeneral: {
		PermCreate, PermLink, PermTransfer, PermBalance, PermArchive,
		PermDeduct, PermAdd, PermSetBalance,
		PermBan, PermUnban, PermListBanned,
	},
}

// Has reports whether the role grants the permission.
func (r Role) Has(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// roleNames maps the user-facing (Arabic) role names used by the admin
// management commands onto roles.
var roleNames = map[string]Role{
	"محاسبة": RoleAccounting,
	"متجر":   RoleStore,
	"عام":    RoleGeneral,
}

// ParseRole resolves a user-facing role name.
func ParseRole(name string) (Role, bool) {
	r, ok := roleNames[name]
	return r, ok
}

// DisplayName returns the user-facing name of the role.
func (r Role) DisplayName() string {
	for name, role := range roleNames {
		if role == r {
			return name
		}
	}
	return string(r)
}
