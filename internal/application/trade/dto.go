package trade

import (
	"time"

	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest represents a request to put a dish in a cart.
// Name, image and price are only used when the menu item no longer exists.
type AddCartItemRequest struct {
	Email      string           `json:"email" binding:"required,email,max=200"`
	MenuItemID uuid.UUID        `json:"menu_item_id" binding:"required"`
	Name       string           `json:"name" binding:"max=200"`
	Image      string           `json:"image" binding:"max=500"`
	Price      *decimal.Decimal `json:"price" binding:"omitempty,nonnegative_decimal"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Email      string          `json:"email"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Image      string          `json:"image,omitempty"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RemoveCartItemResult reports how many lines a removal deleted
type RemoveCartItemResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

// SettleRequest represents a checkout submission.
// Price is optional; when present it must equal the sum of the cart lines.
type SettleRequest struct {
	Email         string           `json:"email" binding:"required,email,max=200"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,nonnegative_decimal"`
	TransactionID string           `json:"transaction_id" binding:"max=255"`
	CartIDs       []uuid.UUID      `json:"cart_ids" binding:"required,min=1,max=200"`
	MenuItemIDs   []uuid.UUID      `json:"menu_item_ids" binding:"max=200"`
}

// SettleResult is returned by a completed checkout
type SettleResult struct {
	PaymentID        uuid.UUID       `json:"payment_id"`
	Price            decimal.Decimal `json:"price"`
	DeletedCartCount int64           `json:"deleted_cart_count"`
}

// CleanupResult is returned by a cart cleanup run
type CleanupResult struct {
	PaymentID        uuid.UUID `json:"payment_id"`
	DeletedCartCount int64     `json:"deleted_cart_count"`
}

// UpdatePaymentStatusRequest sets a payment's status. Empty means done.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=pending done"`
}

// PaymentIntentRequest asks the payment network for a card intent.
// The cap matches the largest single card charge the network accepts.
type PaymentIntentRequest struct {
	Price decimal.Decimal `json:"price" binding:"positive_decimal,max_decimal=999999.99"`
}

// PaymentIntentResponse carries the client secret of a new intent
type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	Price         decimal.Decimal `json:"price"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CartIDs       []uuid.UUID     `json:"cart_ids"`
	MenuItemIDs   []uuid.UUID     `json:"menu_item_ids"`
	Status        string          `json:"status"`
	CartCleared   bool            `json:"cart_cleared"`
	Date          time.Time       `json:"date"`
}

// ToCartItemResponse converts a domain CartItem to a response
func ToCartItemResponse(c *trade.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:         c.ID,
		Email:      c.Email,
		MenuItemID: c.MenuItemID,
		Name:       c.Name,
		Image:      c.Image,
		Price:      c.Price,
		CreatedAt:  c.CreatedAt,
	}
}

// ToPaymentResponse converts a domain Payment to a response
func ToPaymentResponse(p *trade.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		Email:         p.Email,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		CartIDs:       p.CartIDs,
		MenuItemIDs:   p.MenuItemIDs,
		Status:        p.Status.String(),
		CartCleared:   p.CartCleared,
		Date:          p.Date,
	}
}

func toPaymentResponses(payments []*trade.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, ToPaymentResponse(p))
	}
	return out
}
