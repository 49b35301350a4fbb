package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/bistro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusDone    PaymentStatus = "done"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus converts a string into a PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown payment status: %s", s))
	}
	return status, nil
}

// Payment records a completed checkout.
// It is created once per checkout and never deleted by the normal flow.
type Payment struct {
	shared.BaseEntity
	Email         string
	Price         decimal.Decimal
	TransactionID string
	CartIDs       []uuid.UUID
	MenuItemIDs   []uuid.UUID
	Status        PaymentStatus
	CartCleared   bool
	Date          time.Time
}

// NewPayment creates a pending payment for the settled cart lines
func NewPayment(email string, price decimal.Decimal, transactionID string, cartIDs, menuItemIDs []uuid.UUID) (*Payment, error) {
	email = shared.NormalizeEmail(email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(cartIDs) == 0 {
		return nil, shared.NewValidationError("At least one cart item is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Payment price cannot be negative")
	}

	base := shared.NewBaseEntity()
	return &Payment{
		BaseEntity:    base,
		Email:         email,
		Price:         price,
		TransactionID: strings.TrimSpace(transactionID),
		CartIDs:       append([]uuid.UUID(nil), cartIDs...),
		MenuItemIDs:   append([]uuid.UUID(nil), menuItemIDs...),
		Status:        PaymentStatusPending,
		Date:          base.CreatedAt,
	}, nil
}

// SetStatus changes the payment status
func (p *Payment) SetStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown payment status: %s", status))
	}
	p.Status = status
	p.Touch()
	return nil
}

// OwnedBy reports whether the payment belongs to email
func (p *Payment) OwnedBy(email string) bool {
	return shared.SameEmail(p.Email, email)
}
