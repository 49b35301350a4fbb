package handler

import (
	"net/http"

	catalogapp "github.com/bistro/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the menu and guest reviews
type CatalogHandler struct {
	BaseHandler
	menuService   *catalogapp.MenuService
	reviewService *catalogapp.ReviewService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(menuService *catalogapp.MenuService, reviewService *catalogapp.ReviewService) *CatalogHandler {
	return &CatalogHandler{
		menuService:   menuService,
		reviewService: reviewService,
	}
}

// ListMenu handles GET /menu
func (h *CatalogHandler) ListMenu(c *gin.Context) {
	items, err := h.menuService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetMenuItem handles GET /menu/:id
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.menuService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// CreateMenuItem handles POST /menu
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var req catalogapp.CreateMenuItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateMenuItem handles PATCH /menu/:id
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateMenuItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteMenuItem handles DELETE /menu/:id
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateReview handles POST /reviews
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	var req catalogapp.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// ListReviews handles GET /reviews. With ?email= only that guest's reviews are returned.
func (h *CatalogHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}
