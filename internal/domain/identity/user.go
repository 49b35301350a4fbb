package identity

import (
	"strings"

	"github.com/bistro/backend/internal/domain/shared"
)

// User is a member of the restaurant platform, keyed by email.
// Users are created on first sign-in and only ever mutated by role promotion.
type User struct {
	shared.BaseEntity
	Email    string
	Name     string
	PhotoURL string
	Role     Role
}

// NewUser creates a user with the default role
func NewUser(email, name string) (*User, error) {
	email = shared.NormalizeEmail(email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		Name:       strings.TrimSpace(name),
		Role:       RoleUser,
	}, nil
}

// SetPhotoURL sets the user's profile photo
func (u *User) SetPhotoURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_PHOTO_URL", "Photo URL cannot exceed 500 characters")
	}
	u.PhotoURL = strings.TrimSpace(url)
	u.Touch()
	return nil
}

// Promote grants the admin role
func (u *User) Promote() error {
	if u.Role == RoleAdmin {
		return shared.NewDomainError("ALREADY_ADMIN", "User is already an admin")
	}
	u.Role = RoleAdmin
	u.Touch()
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}
