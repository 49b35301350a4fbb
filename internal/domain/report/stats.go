package report

import (
	"context"

	"github.com/shopspring/decimal"
)

// GlobalStats is the dashboard summary.
// Counts may be estimates; revenue is exact.
type GlobalStats struct {
	Users     int64           `json:"users"`
	MenuItems int64           `json:"menu_items"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryStats aggregates purchased menu item occurrences for one category
type CategoryStats struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Repository defines the read-only queries behind the dashboard
type Repository interface {
	// EstimatedUserCount returns the approximate number of users
	EstimatedUserCount(ctx context.Context) (int64, error)

	// EstimatedMenuItemCount returns the approximate number of menu items
	EstimatedMenuItemCount(ctx context.Context) (int64, error)

	// EstimatedPaymentCount returns the approximate number of payments
	EstimatedPaymentCount(ctx context.Context) (int64, error)

	// TotalRevenue returns the sum of all payment prices, zero when there are none
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)

	// OrderStatsByCategory joins every purchased menu item reference against
	// the catalog and groups by category. References to missing items are dropped.
	OrderStatsByCategory(ctx context.Context) ([]CategoryStats, error)
}
