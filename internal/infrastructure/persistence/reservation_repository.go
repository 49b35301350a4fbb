package persistence

import (
	"context"
	"fmt"

	"github.com/bistro/backend/internal/domain/reservation"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReservationRepository implements reservation.Repository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	if err := r.db.WithContext(ctx).Create(models.ReservationModelFromDomain(res)).Error; err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *GormReservationRepository) FindByEmail(ctx context.Context, email string) ([]*reservation.Reservation, error) {
	var rows []models.ReservationModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", shared.NormalizeEmail(email)).
		Order("reserved_for").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	out := make([]*reservation.Reservation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

var _ reservation.Repository = (*GormReservationRepository)(nil)
