package reservation

import (
	"context"
	"time"

	"github.com/bistro/backend/internal/domain/reservation"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReservationRequest represents a table booking submission
type CreateReservationRequest struct {
	Email       string    `json:"email" binding:"required,email,max=200"`
	Name        string    `json:"name" binding:"max=200"`
	Phone       string    `json:"phone" binding:"max=50"`
	Guests      int       `json:"guests" binding:"required,min=1,max=50"`
	ReservedFor time.Time `json:"reserved_for" binding:"required"`
	Notes       string    `json:"notes" binding:"max=2000"`
}

// ReservationResponse represents a reservation in API responses
type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Guests      int       `json:"guests"`
	ReservedFor time.Time `json:"reserved_for"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReservationService handles table bookings
type ReservationService struct {
	repo   reservation.Repository
	logger *zap.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(repo reservation.Repository, logger *zap.Logger) *ReservationService {
	return &ReservationService{repo: repo, logger: logger}
}

// Create books a table
func (s *ReservationService) Create(ctx context.Context, req CreateReservationRequest) (*ReservationResponse, error) {
	r, err := reservation.NewReservation(req.Email, req.Name, req.Phone, req.Guests, req.ReservedFor, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error("Failed to save reservation", zap.String("email", r.Email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to save reservation")
	}

	s.logger.Info("Reservation created",
		zap.String("reservation_id", r.ID.String()),
		zap.Int("guests", r.Guests),
		zap.Time("reserved_for", r.ReservedFor))
	resp := toResponse(r)
	return &resp, nil
}

// ListByEmail returns the bookings made by email. The email is mandatory.
func (s *ReservationService) ListByEmail(ctx context.Context, email string) ([]ReservationResponse, error) {
	email = shared.NormalizeEmail(email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to list reservations", zap.String("email", email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to list reservations")
	}
	out := make([]ReservationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toResponse(r))
	}
	return out, nil
}

func toResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		Email:       r.Email,
		Name:        r.Name,
		Phone:       r.Phone,
		Guests:      r.Guests,
		ReservedFor: r.ReservedFor,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
	}
}
