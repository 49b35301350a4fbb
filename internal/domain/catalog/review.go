package catalog

import (
	"strings"

	"github.com/bistro/backend/internal/domain/shared"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Review is a guest's rating of the restaurant
type Review struct {
	shared.BaseEntity
	Email   string
	Name    string
	Details string
	Rating  int
}

// NewReview creates a review
func NewReview(email, name, details string, rating int) (*Review, error) {
	email = shared.NormalizeEmail(email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	details = strings.TrimSpace(details)
	if len(details) > 2000 {
		return nil, shared.NewDomainError("INVALID_DETAILS", "Review details cannot exceed 2000 characters")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		Name:       strings.TrimSpace(name),
		Details:    details,
		Rating:     rating,
	}, nil
}
