package persistence

import (
	"context"
	"fmt"

	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMenuItemRepository implements catalog.MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByID finds a menu item by its ID
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	var model models.MenuItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr("find menu item", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the menu items among ids that exist
func (r *GormMenuItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.MenuItem, error) {
	if len(ids) == 0 {
		return []*catalog.MenuItem{}, nil
	}
	var rows []models.MenuItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	return menuItemsToDomain(rows), nil
}

// FindAll returns the whole menu ordered by category then name
func (r *GormMenuItemRepository) FindAll(ctx context.Context) ([]*catalog.MenuItem, error) {
	var rows []models.MenuItemModel
	if err := r.db.WithContext(ctx).Order("category").Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return menuItemsToDomain(rows), nil
}

// Save creates or updates a menu item
func (r *GormMenuItemRepository) Save(ctx context.Context, item *catalog.MenuItem) error {
	if err := r.db.WithContext(ctx).Save(models.MenuItemModelFromDomain(item)).Error; err != nil {
		return fmt.Errorf("save menu item: %w", err)
	}
	return nil
}

// Delete deletes a menu item
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected("delete menu item", r.db.WithContext(ctx).Delete(&models.MenuItemModel{}, "id = ?", id))
}

func menuItemsToDomain(rows []models.MenuItemModel) []*catalog.MenuItem {
	items := make([]*catalog.MenuItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToDomain())
	}
	return items
}

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create stores a review
func (r *GormReviewRepository) Create(ctx context.Context, review *catalog.Review) error {
	if err := r.db.WithContext(ctx).Create(models.ReviewModelFromDomain(review)).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// FindAll returns every review, newest first
func (r *GormReviewRepository) FindAll(ctx context.Context) ([]*catalog.Review, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

// FindByEmail returns the reviews written by email, newest first
func (r *GormReviewRepository) FindByEmail(ctx context.Context, email string) ([]*catalog.Review, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("email = ?", shared.NormalizeEmail(email)))
}

func (r *GormReviewRepository) find(_ context.Context, q *gorm.DB) ([]*catalog.Review, error) {
	var rows []models.ReviewModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviews := make([]*catalog.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, rows[i].ToDomain())
	}
	return reviews, nil
}

var (
	_ catalog.MenuItemRepository = (*GormMenuItemRepository)(nil)
	_ catalog.ReviewRepository   = (*GormReviewRepository)(nil)
)
