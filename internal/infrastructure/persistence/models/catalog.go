package models

import (
	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// MenuItemModel is the persistence model for the MenuItem domain entity.
type MenuItemModel struct {
	BaseModel
	Name     string          `gorm:"type:varchar(200);not null"`
	Category string          `gorm:"type:varchar(100);not null;index"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Recipe   string          `gorm:"type:text"`
	Image    string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// ToDomain converts the persistence model to a domain MenuItem entity.
func (m *MenuItemModel) ToDomain() *catalog.MenuItem {
	return &catalog.MenuItem{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Category:   m.Category,
		Price:      m.Price,
		Recipe:     m.Recipe,
		Image:      m.Image,
	}
}

// MenuItemModelFromDomain creates a persistence model from a domain MenuItem entity.
func MenuItemModelFromDomain(item *catalog.MenuItem) *MenuItemModel {
	m := &MenuItemModel{
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
		Recipe:   item.Recipe,
		Image:    item.Image,
	}
	m.FromDomainBaseEntity(item.BaseEntity)
	return m
}

// ReviewModel is the persistence model for the Review domain entity.
type ReviewModel struct {
	BaseModel
	Email   string `gorm:"type:varchar(200);not null;index"`
	Name    string `gorm:"type:varchar(200)"`
	Details string `gorm:"type:text"`
	Rating  int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		Email:      m.Email,
		Name:       m.Name,
		Details:    m.Details,
		Rating:     m.Rating,
	}
}

// ReviewModelFromDomain creates a persistence model from a domain Review entity.
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		Email:   r.Email,
		Name:    r.Name,
		Details: r.Details,
		Rating:  r.Rating,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
