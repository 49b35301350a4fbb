package catalog

import (
	"context"

	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/bistro/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReviewService handles guest reviews
type ReviewService struct {
	reviewRepo catalog.ReviewRepository
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo catalog.ReviewRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, logger: logger}
}

// Create stores a review
func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	review, err := catalog.NewReview(req.Email, req.Name, req.Details, req.Rating)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to save review")
	}
	resp := ToReviewResponse(review)
	return &resp, nil
}

// List returns all reviews, or only those written by email when it is set
func (s *ReviewService) List(ctx context.Context, email string) ([]ReviewResponse, error) {
	var (
		reviews []*catalog.Review
		err     error
	)
	if email == "" {
		reviews, err = s.reviewRepo.FindAll(ctx)
	} else {
		reviews, err = s.reviewRepo.FindByEmail(ctx, shared.NormalizeEmail(email))
	}
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.String("email", email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to list reviews")
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(r))
	}
	return out, nil
}
