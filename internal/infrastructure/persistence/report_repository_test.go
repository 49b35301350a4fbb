package persistence

import (
	"context"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/bistro/backend/internal/domain/identity"
	"github.com/bistro/backend/internal/domain/report"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportRepository_EmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewGormReportRepository(newTestDatabase(t).DB)

	revenue, err := repo.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())

	orders, err := repo.EstimatedPaymentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), orders)

	stats, err := repo.OrderStatsByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestGormReportRepository_CategoryScenario(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormReportRepository(db.DB)
	menu := NewGormMenuItemRepository(db.DB)
	payments := NewGormPaymentRepository(db.DB)
	users := NewGormUserRepository(db.DB)

	a, err := catalog.NewMenuItem("Soup", "Starter", decimal.NewFromInt(5), "", "")
	require.NoError(t, err)
	b, err := catalog.NewMenuItem("Steak", "Main", decimal.NewFromInt(20), "", "")
	require.NoError(t, err)
	require.NoError(t, menu.Save(ctx, a))
	require.NoError(t, menu.Save(ctx, b))

	u, err := identity.NewUser("u@bistro.example", "U")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, u))

	p1, err := trade.NewPayment("u@bistro.example", decimal.NewFromInt(45), "", []uuid.UUID{uuid.New()}, []uuid.UUID{a.ID, b.ID, b.ID})
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, p1))

	// references a dish that is no longer on the menu
	p2, err := trade.NewPayment("u@bistro.example", decimal.RequireFromString("12.50"), "", []uuid.UUID{uuid.New()}, []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, p2))

	stats, err := repo.OrderStatsByCategory(ctx)
	require.NoError(t, err)
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })

	require.Len(t, stats, 2)
	assert.Equal(t, "Main", stats[0].Category)
	assert.Equal(t, int64(2), stats[0].Quantity)
	assert.True(t, stats[0].Revenue.Equal(decimal.NewFromInt(40)), stats[0].Revenue.String())
	assert.Equal(t, "Starter", stats[1].Category)
	assert.Equal(t, int64(1), stats[1].Quantity)
	assert.True(t, stats[1].Revenue.Equal(decimal.NewFromInt(5)), stats[1].Revenue.String())

	var quantity int64
	for _, s := range stats {
		quantity += s.Quantity
	}
	assert.Equal(t, int64(3), quantity)

	revenue, err := repo.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.RequireFromString("57.50")), revenue.String())

	count := func(fn func(context.Context) (int64, error)) int64 {
		n, err := fn(ctx)
		require.NoError(t, err)
		return n
	}
	assert.Equal(t, int64(1), count(repo.EstimatedUserCount))
	assert.Equal(t, int64(2), count(repo.EstimatedMenuItemCount))
	assert.Equal(t, int64(2), count(repo.EstimatedPaymentCount))
}

func TestGormReportRepository_PostgresEstimate(t *testing.T) {
	ctx := context.Background()

	t.Run("uses planner estimate", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT reltuples::bigint FROM pg_class WHERE relname = \$1`).
			WithArgs("payments").
			WillReturnRows(sqlmock.NewRows([]string{"reltuples"}).AddRow(int64(1200)))

		n, err := NewGormReportRepository(db.DB).EstimatedPaymentCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1200), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to exact count before analyze", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT reltuples::bigint FROM pg_class WHERE relname = \$1`).
			WithArgs("users").
			WillReturnRows(sqlmock.NewRows([]string{"reltuples"}).AddRow(int64(-1)))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

		n, err := NewGormReportRepository(db.DB).EstimatedUserCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReportRepository_Interface(t *testing.T) {
	var _ report.Repository = NewGormReportRepository(nil)
}
