package catalog

import (
	"context"

	"github.com/google/uuid"
)

// MenuItemRepository defines the interface for menu item persistence
type MenuItemRepository interface {
	// FindByID finds a menu item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// FindByIDs finds the menu items among ids that exist
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*MenuItem, error)

	// FindAll returns the whole menu
	FindAll(ctx context.Context) ([]*MenuItem, error)

	// Save creates or updates a menu item
	Save(ctx context.Context, item *MenuItem) error

	// Delete deletes a menu item
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindAll(ctx context.Context) ([]*Review, error)
	FindByEmail(ctx context.Context, email string) ([]*Review, error)
}
