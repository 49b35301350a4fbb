package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// Create adds a cart line
	Create(ctx context.Context, item *CartItem) error

	// FindByEmail returns the cart lines owned by email
	FindByEmail(ctx context.Context, email string) ([]*CartItem, error)

	// FindByIDs returns the cart lines among ids that exist
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*CartItem, error)

	// Delete removes one cart line owned by email and reports the number of rows removed
	Delete(ctx context.Context, id uuid.UUID, email string) (int64, error)

	// DeleteByIDs removes every cart line whose id is in ids.
	// Ids that are already gone are ignored.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Create inserts the payment together with its menu item references
	Create(ctx context.Context, payment *Payment) error

	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll returns every payment, newest first
	FindAll(ctx context.Context) ([]*Payment, error)

	// FindByEmail returns the payments made by email, newest first
	FindByEmail(ctx context.Context, email string) ([]*Payment, error)

	// UpdateStatus sets the status of a payment
	UpdateStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error

	// MarkCartCleared records that the payment's cart lines are gone
	MarkCartCleared(ctx context.Context, id uuid.UUID) error

	// FindUncleared returns payments whose cart cleanup is still outstanding
	// and that were created before the given time
	FindUncleared(ctx context.Context, before time.Time, limit int) ([]*Payment, error)
}

// SettlementUnitOfWork runs a whole settlement in a single store transaction
type SettlementUnitOfWork interface {
	// SettleAtomically inserts the payment and removes its cart lines in one transaction
	SettleAtomically(ctx context.Context, payment *Payment) (int64, error)
}
