package identity

import (
	"strings"

	"github.com/bistro/backend/internal/domain/shared"
)

// Role is the closed set of privilege levels a user can hold
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a string into a Role.
// An empty string is the default user role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", shared.NewDomainError("INVALID_ROLE", "Unknown role: "+s)
	}
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants admin privileges
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// String returns the role name
func (r Role) String() string {
	return string(r)
}
