package handler

import (
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/dashboard"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the pricing report and the monthly sales series
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PricingReport handles GET /reports/pricing?margin=&status=
func (h *ReportHandler) PricingReport(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req report.PricingReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reportService.PricingReport(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Series handles GET /reports/series?from=YYYY-MM&to=YYYY-MM
func (h *ReportHandler) Series(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter dashboard.PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	series, err := h.reportService.Series(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}
