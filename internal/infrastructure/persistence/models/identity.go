package models

import (
	"github.com/bistro/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email    string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name     string        `gorm:"type:varchar(200)"`
	PhotoURL string        `gorm:"type:varchar(500)"`
	Role     identity.Role `gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: m.BaseModel.ToDomain(),
		Email:      m.Email,
		Name:       m.Name,
		PhotoURL:   m.PhotoURL,
		Role:       m.Role,
	}
}

// UserModelFromDomain creates a persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:    u.Email,
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
