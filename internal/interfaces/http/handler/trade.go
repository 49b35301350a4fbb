package handler

import (
	"errors"
	"net/http"

	tradeapp "github.com/bistro/backend/internal/application/trade"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/bistro/backend/internal/infrastructure/logger"
	"github.com/bistro/backend/internal/interfaces/http/dto"
	"github.com/bistro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradeHandler serves carts, checkout and payments
type TradeHandler struct {
	BaseHandler
	cartService    *tradeapp.CartService
	paymentService *tradeapp.PaymentService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(cartService *tradeapp.CartService, paymentService *tradeapp.PaymentService) *TradeHandler {
	return &TradeHandler{
		cartService:    cartService,
		paymentService: paymentService,
	}
}

// ListCart handles GET /carts?email=
func (h *TradeHandler) ListCart(c *gin.Context) {
	items, err := h.cartService.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// AddToCart handles POST /carts
func (h *TradeHandler) AddToCart(c *gin.Context) {
	var req tradeapp.AddCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.cartService.Add(c.Request.Context(), middleware.GetJWTEmail(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// RemoveFromCart handles DELETE /carts/:id
func (h *TradeHandler) RemoveFromCart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.cartService.Remove(c.Request.Context(), middleware.GetJWTEmail(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Settle handles POST /payments.
// A payment recorded without its cart being cleared answers 207 with the payment id.
func (h *TradeHandler) Settle(c *gin.Context) {
	var req tradeapp.SettleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.paymentService.Settle(c.Request.Context(), middleware.GetJWTEmail(c), req)
	if err != nil {
		var partial *trade.PartialSettlementError
		if errors.As(err, &partial) {
			logger.GetGinLogger(c).Warn("Checkout recorded with cart left behind",
				zap.String("payment_id", partial.PaymentID.String()),
				zap.Error(partial.Cause),
			)
			c.JSON(http.StatusMultiStatus, dto.NewPartialSettlementResponse(
				partial.PaymentID.String(),
				"Payment recorded but the cart could not be cleared; retry the cleanup",
				getRequestID(c),
			))
			return
		}
		h.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/payments/"+result.PaymentID.String())
	h.Created(c, result)
}

// CleanupCart handles POST /payments/:id/cleanup. Running it twice is harmless.
func (h *TradeHandler) CleanupCart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.paymentService.ReconcileOwnedCart(c.Request.Context(), middleware.GetJWTEmail(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListPayments handles GET /payments
func (h *TradeHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// ListOwnPayments handles GET /payments/:email
func (h *TradeHandler) ListOwnPayments(c *gin.Context) {
	payments, err := h.paymentService.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// UpdatePaymentStatus handles PUT /payments/:id
func (h *TradeHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.UpdatePaymentStatusRequest
	// An empty body marks the payment done
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// CreatePaymentIntent handles POST /payment-intent
func (h *TradeHandler) CreatePaymentIntent(c *gin.Context) {
	var req tradeapp.PaymentIntentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, intent)
}
