package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role comes from the bearer token issued by the external auth service.
type Role string

const (
	RoleUser       Role = "user"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role may use the dashboard and staff booking mode.
func (r Role) IsStaff() bool {
	switch r {
	case RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
