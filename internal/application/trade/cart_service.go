package trade

import (
	"context"
	"errors"

	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService handles per-user cart lines
type CartService struct {
	cartRepo trade.CartRepository
	menuRepo catalog.MenuItemRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo trade.CartRepository, menuRepo catalog.MenuItemRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
		logger:   logger,
	}
}

// List returns the cart lines owned by email
func (s *CartService) List(ctx context.Context, email string) ([]CartItemResponse, error) {
	items, err := s.cartRepo.FindByEmail(ctx, shared.NormalizeEmail(email))
	if err != nil {
		s.logger.Error("Failed to list cart", zap.String("email", email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to list cart")
	}
	out := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToCartItemResponse(item))
	}
	return out, nil
}

// Add puts a dish in the requester's cart. The stored price is the
// catalog price at this moment; the client's values are only a fallback
// for a dish that has left the menu.
func (s *CartService) Add(ctx context.Context, requester string, req AddCartItemRequest) (*CartItemResponse, error) {
	if !shared.SameEmail(req.Email, requester) {
		return nil, shared.NewDomainError("FORBIDDEN", "Cannot add items to another user's cart")
	}

	name, image := req.Name, req.Image
	menuItem, err := s.menuRepo.FindByID(ctx, req.MenuItemID)
	switch {
	case err == nil:
		name, image = menuItem.Name, menuItem.Image
	case errors.Is(err, shared.ErrNotFound):
		if req.Price == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Menu item not found")
		}
	default:
		s.logger.Error("Failed to load menu item for cart", zap.String("menu_item_id", req.MenuItemID.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to load menu item")
	}

	var item *trade.CartItem
	if menuItem != nil {
		item, err = trade.NewCartItem(req.Email, req.MenuItemID, name, image, menuItem.Price)
	} else {
		item, err = trade.NewCartItem(req.Email, req.MenuItemID, name, image, *req.Price)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to add cart item", zap.String("email", item.Email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to add cart item")
	}

	resp := ToCartItemResponse(item)
	return &resp, nil
}

// Remove deletes one of the requester's cart lines. Removing a line that
// is already gone, or that belongs to someone else, deletes nothing.
func (s *CartService) Remove(ctx context.Context, requester string, id uuid.UUID) (*RemoveCartItemResult, error) {
	deleted, err := s.cartRepo.Delete(ctx, id, shared.NormalizeEmail(requester))
	if err != nil {
		s.logger.Error("Failed to remove cart item", zap.String("cart_id", id.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to remove cart item")
	}
	return &RemoveCartItemResult{DeletedCount: deleted}, nil
}
