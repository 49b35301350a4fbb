package catalog

import (
	"time"

	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest represents a request to add a dish to the menu
type CreateMenuItemRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Category string          `json:"category" binding:"required,min=1,max=100"`
	Price    decimal.Decimal `json:"price" binding:"positive_decimal"`
	Recipe   string          `json:"recipe" binding:"max=5000"`
	Image    string          `json:"image" binding:"omitempty,max=500"`
}

// UpdateMenuItemRequest represents a partial menu item update
type UpdateMenuItemRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Price    *decimal.Decimal `json:"price" binding:"omitempty,positive_decimal"`
	Recipe   *string          `json:"recipe" binding:"omitempty,max=5000"`
	Image    *string          `json:"image" binding:"omitempty,max=500"`
}

// MenuItemResponse represents a menu item in API responses
type MenuItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Recipe    string          `json:"recipe,omitempty"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateReviewRequest represents a guest review submission
type CreateReviewRequest struct {
	Email   string `json:"email" binding:"required,email,max=200"`
	Name    string `json:"name" binding:"max=200"`
	Details string `json:"details" binding:"max=2000"`
	Rating  int    `json:"rating" binding:"min=0,max=5"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Details   string    `json:"details,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMenuItemResponse converts a domain MenuItem to a response
func ToMenuItemResponse(m *catalog.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		Price:     m.Price,
		Recipe:    m.Recipe,
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToReviewResponse converts a domain Review to a response
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Details:   r.Details,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}
