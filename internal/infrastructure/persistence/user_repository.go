package persistence

import (
	"context"

	"github.com/bistro/backend/internal/domain/identity"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository stores users. Emails are unique and kept in normalized form.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts user; a taken email yields shared.ErrAlreadyExists
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return storeErr("create user", r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error)
}

func (r *GormUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role identity.Role) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"role": role, "updated_at": shared.Now()})
	return affected("update user role", result)
}

func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected("delete user", r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id))
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.first(ctx, "find user", "id = ?", id)
}

// FindByEmail matches regardless of the case the caller used
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.first(ctx, "find user by email", "email = ?", shared.NormalizeEmail(email))
}

func (r *GormUserRepository) first(ctx context.Context, op, query string, arg any) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		return nil, storeErr(op, err)
	}
	return model.ToDomain(), nil
}

// FindAll lists users oldest first
func (r *GormUserRepository) FindAll(ctx context.Context) ([]*identity.User, error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, storeErr("list users", err)
	}
	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
