package reservation

import (
	"context"
	"strings"
	"time"

	"github.com/bistro/backend/internal/domain/shared"
)

// MaxGuests bounds the party size of a single booking
const MaxGuests = 50

// Reservation is a table booking owned by the user who made it
type Reservation struct {
	shared.BaseEntity
	Email       string
	Name        string
	Phone       string
	Guests      int
	ReservedFor time.Time
	Notes       string
}

// NewReservation creates a reservation
func NewReservation(email, name, phone string, guests int, reservedFor time.Time, notes string) (*Reservation, error) {
	email = shared.NormalizeEmail(email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	if guests < 1 || guests > MaxGuests {
		return nil, shared.NewDomainError("INVALID_GUESTS", "Party size must be between 1 and 50")
	}
	if reservedFor.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Reservation date is required")
	}

	return &Reservation{
		BaseEntity:  shared.NewBaseEntity(),
		Email:       email,
		Name:        strings.TrimSpace(name),
		Phone:       strings.TrimSpace(phone),
		Guests:      guests,
		ReservedFor: reservedFor,
		Notes:       strings.TrimSpace(notes),
	}, nil
}

// Repository defines the interface for reservation persistence
type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	FindByEmail(ctx context.Context, email string) ([]*Reservation, error)
}
