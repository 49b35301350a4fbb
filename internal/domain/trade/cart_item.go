package trade

import (
	"strings"

	"github.com/bistro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one pending order line in a user's cart.
// Price is a snapshot taken when the line was added.
type CartItem struct {
	shared.BaseEntity
	Email      string
	MenuItemID uuid.UUID
	Name       string
	Image      string
	Price      decimal.Decimal
}

// NewCartItem creates a cart line owned by email
func NewCartItem(email string, menuItemID uuid.UUID, name, image string, price decimal.Decimal) (*CartItem, error) {
	email = shared.NormalizeEmail(email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	if menuItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item reference is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cart item price cannot be negative")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		MenuItemID: menuItemID,
		Name:       strings.TrimSpace(name),
		Image:      strings.TrimSpace(image),
		Price:      price,
	}, nil
}

// OwnedBy reports whether the line belongs to email
func (c *CartItem) OwnedBy(email string) bool {
	return shared.SameEmail(c.Email, email)
}
