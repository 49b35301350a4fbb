package identity

import (
	"time"

	"github.com/bistro/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserDTO represents user data transfer object
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserInput contains input for first sign-in registration
type CreateUserInput struct {
	Email    string
	Name     string
	PhotoURL string
}

// CreateUserResult tells the caller whether a new record was written.
// Message mirrors the reply clients already rely on.
type CreateUserResult struct {
	User    *UserDTO `json:"user"`
	Created bool     `json:"created"`
	Message string   `json:"message,omitempty"`
}

// AdminCheckResult answers whether an email holds the admin role
type AdminCheckResult struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// IssueTokenInput contains the claims a client asks to be signed
type IssueTokenInput struct {
	Email string
	Name  string
}

// TokenResult is a freshly issued identity token
type TokenResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toUserDTO(u *identity.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		PhotoURL:  u.PhotoURL,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserDTOs(users []*identity.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserDTO(u))
	}
	return out
}
