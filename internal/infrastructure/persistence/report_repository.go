package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bistro/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// EstimatedUserCount returns the approximate number of users
func (r *GormReportRepository) EstimatedUserCount(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx, "users")
}

// EstimatedMenuItemCount returns the approximate number of menu items
func (r *GormReportRepository) EstimatedMenuItemCount(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx, "menu_items")
}

// EstimatedPaymentCount returns the approximate number of payments
func (r *GormReportRepository) EstimatedPaymentCount(ctx context.Context) (int64, error) {
	return r.estimatedCount(ctx, "payments")
}

// estimatedCount reads the planner's row estimate on PostgreSQL.
// The estimate is -1 until the table has been analyzed; then, and on
// other dialects, it falls back to an exact count.
func (r *GormReportRepository) estimatedCount(ctx context.Context, table string) (int64, error) {
	db := r.db.WithContext(ctx)

	if db.Dialector.Name() == "postgres" {
		var estimate sql.NullInt64
		err := db.Raw("SELECT reltuples::bigint FROM pg_class WHERE relname = ?", table).Scan(&estimate).Error
		if err == nil && estimate.Valid && estimate.Int64 >= 0 {
			return estimate.Int64, nil
		}
	}

	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// TotalRevenue returns the sum of all payment prices, zero when there are none
func (r *GormReportRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	row := r.db.WithContext(ctx).
		Table("payments").
		Select("COALESCE(SUM(price), 0)").
		Row()
	if err := row.Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("sum revenue: %w", err)
	}
	return revenue, nil
}

type categoryStatsRow struct {
	Category string
	Quantity int64
	Revenue  decimal.Decimal
}

// OrderStatsByCategory joins each purchased menu item reference against the
// catalog and groups by category. The inner join drops references whose
// menu item no longer exists.
func (r *GormReportRepository) OrderStatsByCategory(ctx context.Context) ([]report.CategoryStats, error) {
	var rows []categoryStatsRow
	err := r.db.WithContext(ctx).
		Table("payment_menu_items AS pmi").
		Select("mi.category AS category, COUNT(*) AS quantity, COALESCE(SUM(mi.price), 0) AS revenue").
		Joins("JOIN menu_items AS mi ON mi.id = pmi.menu_item_id").
		Group("mi.category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate order stats: %w", err)
	}

	stats := make([]report.CategoryStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, report.CategoryStats{
			Category: row.Category,
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
		})
	}
	return stats, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
