package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/bistro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements trade.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts the payment row and its menu item references in one transaction
func (r *GormPaymentRepository) Create(ctx context.Context, payment *trade.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertPayment(tx, model)
	})
}

func insertPayment(tx *gorm.DB, model *models.PaymentModel) error {
	if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	if len(model.MenuItems) == 0 {
		return nil
	}
	if err := tx.Create(&model.MenuItems).Error; err != nil {
		return fmt.Errorf("insert payment menu items: %w", err)
	}
	return nil
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Payment, error) {
	var model models.PaymentModel
	if err := r.withMenuItems(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr("find payment", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every payment, newest first
func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]*trade.Payment, error) {
	return r.find(r.withMenuItems(ctx).Order("paid_at DESC"))
}

// FindByEmail returns the payments made by email, newest first
func (r *GormPaymentRepository) FindByEmail(ctx context.Context, email string) ([]*trade.Payment, error) {
	return r.find(r.withMenuItems(ctx).
		Where("email = ?", shared.NormalizeEmail(email)).
		Order("paid_at DESC"))
}

// FindUncleared returns payments whose cart lines may still exist, oldest first
func (r *GormPaymentRepository) FindUncleared(ctx context.Context, before time.Time, limit int) ([]*trade.Payment, error) {
	q := r.withMenuItems(ctx).
		Where("cart_cleared = ? AND created_at < ?", false, before).
		Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.find(q)
}

// UpdateStatus sets the status of a payment
func (r *GormPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status trade.PaymentStatus) error {
	return r.update(ctx, id, map[string]any{"status": status})
}

// MarkCartCleared records that the payment's cart lines are gone
func (r *GormPaymentRepository) MarkCartCleared(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, map[string]any{"cart_cleared": true})
}

func (r *GormPaymentRepository) update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	fields["updated_at"] = shared.Now()
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ?", id).
		Updates(fields)
	return affected("update payment", result)
}

func (r *GormPaymentRepository) withMenuItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *GormPaymentRepository) find(q *gorm.DB) ([]*trade.Payment, error) {
	var rows []models.PaymentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments := make([]*trade.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, rows[i].ToDomain())
	}
	return payments, nil
}

// GormSettlementUnitOfWork implements trade.SettlementUnitOfWork using a single GORM transaction
type GormSettlementUnitOfWork struct {
	db *gorm.DB
}

// NewGormSettlementUnitOfWork creates a new GormSettlementUnitOfWork
func NewGormSettlementUnitOfWork(db *gorm.DB) *GormSettlementUnitOfWork {
	return &GormSettlementUnitOfWork{db: db}
}

// SettleAtomically inserts the payment and removes its cart lines in one transaction.
// Either both happen or neither does.
func (u *GormSettlementUnitOfWork) SettleAtomically(ctx context.Context, payment *trade.Payment) (int64, error) {
	model := models.PaymentModelFromDomain(payment)
	model.CartCleared = true

	var deleted int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertPayment(tx, model); err != nil {
			return err
		}
		n, err := deleteCartItems(tx, payment.CartIDs)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	payment.CartCleared = true
	return deleted, nil
}

var (
	_ trade.PaymentRepository    = (*GormPaymentRepository)(nil)
	_ trade.SettlementUnitOfWork = (*GormSettlementUnitOfWork)(nil)
)
