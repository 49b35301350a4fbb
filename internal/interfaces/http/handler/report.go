package handler

import (
	reportapp "github.com/bistro/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the admin dashboards
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GlobalStats handles GET /admin-stats
func (h *ReportHandler) GlobalStats(c *gin.Context) {
	stats, err := h.reportService.GlobalStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// OrderStats handles GET /order-stats
func (h *ReportHandler) OrderStats(c *gin.Context) {
	stats, err := h.reportService.OrderStatsByCategory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
