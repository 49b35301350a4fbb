package handler

import (
	reservationapp "github.com/bistro/backend/internal/application/reservation"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	BaseHandler
	reservationService *reservationapp.ReservationService
}

func NewReservationHandler(reservationService *reservationapp.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Create handles POST /reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reservationapp.CreateReservationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	res, err := h.reservationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, res)
}

// ListOwn handles GET /reservations?email=
func (h *ReservationHandler) ListOwn(c *gin.Context) {
	list, err := h.reservationService.ListByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
