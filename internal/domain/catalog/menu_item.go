package catalog

import (
	"strings"

	"github.com/bistro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish offered by the restaurant
type MenuItem struct {
	shared.BaseEntity
	Name     string
	Category string
	Price    decimal.Decimal
	Recipe   string
	Image    string
}

// MenuItemPatch carries the fields of a partial menu item update.
// Nil fields are left unchanged.
type MenuItemPatch struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Recipe   *string
	Image    *string
}

// NewMenuItem creates a menu item
func NewMenuItem(name, category string, price decimal.Decimal, recipe, image string) (*MenuItem, error) {
	item := &MenuItem{
		BaseEntity: shared.NewBaseEntity(),
		Recipe:     strings.TrimSpace(recipe),
		Image:      strings.TrimSpace(image),
	}
	if err := item.setName(name); err != nil {
		return nil, err
	}
	if err := item.setCategory(category); err != nil {
		return nil, err
	}
	if err := item.setPrice(price); err != nil {
		return nil, err
	}
	return item, nil
}

// Apply applies a partial update
func (m *MenuItem) Apply(patch MenuItemPatch) error {
	if patch.Name != nil {
		if err := m.setName(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Category != nil {
		if err := m.setCategory(*patch.Category); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := m.setPrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Recipe != nil {
		m.Recipe = strings.TrimSpace(*patch.Recipe)
	}
	if patch.Image != nil {
		m.Image = strings.TrimSpace(*patch.Image)
	}
	m.Touch()
	return nil
}

func (m *MenuItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot exceed 200 characters")
	}
	m.Name = name
	return nil
}

func (m *MenuItem) setCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Menu item category cannot be empty")
	}
	m.Category = category
	return nil
}

func (m *MenuItem) setPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Menu item price must be greater than zero")
	}
	m.Price = price
	return nil
}
