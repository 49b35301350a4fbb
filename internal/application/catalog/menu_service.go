package catalog

import (
	"context"
	"errors"

	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MenuService handles menu-related business operations
type MenuService struct {
	menuRepo catalog.MenuItemRepository
	logger   *zap.Logger
}

// NewMenuService creates a new MenuService
func NewMenuService(menuRepo catalog.MenuItemRepository, logger *zap.Logger) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		logger:   logger,
	}
}

// List returns the whole menu
func (s *MenuService) List(ctx context.Context) ([]MenuItemResponse, error) {
	items, err := s.menuRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list menu", zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to list menu")
	}
	out := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToMenuItemResponse(item))
	}
	return out, nil
}

// GetByID returns one menu item
func (s *MenuService) GetByID(ctx context.Context, id uuid.UUID) (*MenuItemResponse, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Create adds a dish to the menu
func (s *MenuService) Create(ctx context.Context, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := catalog.NewMenuItem(req.Name, req.Category, req.Price, req.Recipe, req.Image)
	if err != nil {
		return nil, err
	}
	if err := s.menuRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to save menu item", zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to save menu item")
	}

	s.logger.Info("Menu item created",
		zap.String("menu_item_id", item.ID.String()),
		zap.String("category", item.Category))
	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Update applies a partial update to a menu item
func (s *MenuService) Update(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Apply(catalog.MenuItemPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Recipe:   req.Recipe,
		Image:    req.Image,
	}); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to update menu item", zap.String("menu_item_id", id.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to update menu item")
	}

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Delete removes a menu item. Past payments keep their references to it.
func (s *MenuService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Menu item not found")
		}
		s.logger.Error("Failed to delete menu item", zap.String("menu_item_id", id.String()), zap.Error(err))
		return shared.NewPersistenceError("Failed to delete menu item")
	}
	s.logger.Info("Menu item deleted", zap.String("menu_item_id", id.String()))
	return nil
}

func (s *MenuService) find(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Menu item not found")
		}
		s.logger.Error("Failed to find menu item", zap.String("menu_item_id", id.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to find menu item")
	}
	return item, nil
}
