package models

import (
	"time"

	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemModel is the persistence model for the CartItem domain entity.
type CartItemModel struct {
	BaseModel
	Email      string          `gorm:"type:varchar(200);not null;index"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(200)"`
	Image      string          `gorm:"type:varchar(500)"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem entity.
func (m *CartItemModel) ToDomain() *trade.CartItem {
	return &trade.CartItem{
		BaseEntity: m.BaseModel.ToDomain(),
		Email:      m.Email,
		MenuItemID: m.MenuItemID,
		Name:       m.Name,
		Image:      m.Image,
		Price:      m.Price,
	}
}

// CartItemModelFromDomain creates a persistence model from a domain CartItem entity.
func CartItemModelFromDomain(c *trade.CartItem) *CartItemModel {
	m := &CartItemModel{
		Email:      c.Email,
		MenuItemID: c.MenuItemID,
		Name:       c.Name,
		Image:      c.Image,
		Price:      c.Price,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
// Purchased menu items live in payment_menu_items, one row per occurrence.
type PaymentModel struct {
	BaseModel
	Email         string                 `gorm:"type:varchar(200);not null;index"`
	Price         decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	TransactionID string                 `gorm:"type:varchar(255)"`
	CartIDs       []uuid.UUID            `gorm:"serializer:json;type:text"`
	Status        trade.PaymentStatus    `gorm:"type:varchar(20);not null;default:'pending'"`
	CartCleared   bool                   `gorm:"not null;default:false;index"`
	Date          time.Time              `gorm:"column:paid_at;not null"`
	MenuItems     []PaymentMenuItemModel `gorm:"foreignKey:PaymentID"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentMenuItemModel is one purchased menu item reference of a payment.
// It has no foreign key to menu_items; a reference survives deletion of the item.
type PaymentMenuItemModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	PaymentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentMenuItemModel) TableName() string {
	return "payment_menu_items"
}

// ToDomain converts the persistence model to a domain Payment entity.
// MenuItems must be preloaded to populate MenuItemIDs.
func (m *PaymentModel) ToDomain() *trade.Payment {
	menuIDs := make([]uuid.UUID, 0, len(m.MenuItems))
	for _, mi := range m.MenuItems {
		menuIDs = append(menuIDs, mi.MenuItemID)
	}
	cartIDs := m.CartIDs
	if cartIDs == nil {
		cartIDs = []uuid.UUID{}
	}
	return &trade.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		Email:         m.Email,
		Price:         m.Price,
		TransactionID: m.TransactionID,
		CartIDs:       cartIDs,
		MenuItemIDs:   menuIDs,
		Status:        m.Status,
		CartCleared:   m.CartCleared,
		Date:          m.Date,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *trade.Payment) *PaymentModel {
	m := &PaymentModel{
		Email:         p.Email,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		CartIDs:       p.CartIDs,
		Status:        p.Status,
		CartCleared:   p.CartCleared,
		Date:          p.Date,
		MenuItems:     make([]PaymentMenuItemModel, 0, len(p.MenuItemIDs)),
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	for i, id := range p.MenuItemIDs {
		m.MenuItems = append(m.MenuItems, PaymentMenuItemModel{
			PaymentID:  p.ID,
			MenuItemID: id,
			Position:   i,
		})
	}
	return m
}
