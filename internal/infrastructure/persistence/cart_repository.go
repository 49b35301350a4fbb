package persistence

import (
	"context"
	"fmt"

	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/bistro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements trade.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Create adds a cart line
func (r *GormCartRepository) Create(ctx context.Context, item *trade.CartItem) error {
	if err := r.db.WithContext(ctx).Create(models.CartItemModelFromDomain(item)).Error; err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

// FindByEmail returns the cart lines owned by email in insertion order
func (r *GormCartRepository) FindByEmail(ctx context.Context, email string) ([]*trade.CartItem, error) {
	var rows []models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", shared.NormalizeEmail(email)).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return cartItemsToDomain(rows), nil
}

// FindByIDs returns the cart lines among ids that exist
func (r *GormCartRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*trade.CartItem, error) {
	if len(ids) == 0 {
		return []*trade.CartItem{}, nil
	}
	var rows []models.CartItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find cart items: %w", err)
	}
	return cartItemsToDomain(rows), nil
}

// Delete removes one cart line owned by email
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND email = ?", id, shared.NormalizeEmail(email)).
		Delete(&models.CartItemModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete cart item: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByIDs removes every cart line whose id is in ids with a single statement
func (r *GormCartRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return deleteCartItems(r.db.WithContext(ctx), ids)
}

func deleteCartItems(db *gorm.DB, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&models.CartItemModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete cart items: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func cartItemsToDomain(rows []models.CartItemModel) []*trade.CartItem {
	items := make([]*trade.CartItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToDomain())
	}
	return items
}

var _ trade.CartRepository = (*GormCartRepository)(nil)
