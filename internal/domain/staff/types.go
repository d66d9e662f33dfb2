package staff

import "errors"

var ErrInvalidRole = errors.New("invalid staff role")

// Role is the staff member's permission tier carried in auth tokens.
// Staff accounts themselves are managed by an external identity service;
// only the role and the opaque staff id reach this service.
type Role string

const (
	RoleFrontDesk Role = "front_desk"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

func NewRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleFrontDesk, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}
