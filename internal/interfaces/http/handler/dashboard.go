package handler

import (
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the headline indicators and monthly sales input
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// KPIs handles GET /dashboard/kpis?from=YYYY-MM&to=YYYY-MM
func (h *DashboardHandler) KPIs(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter dashboard.PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	kpis, err := h.dashboardService.KPIs(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, kpis)
}

// RecordSales handles POST /dashboard/sales.
// A second record for the same product and month replaces the first.
func (h *DashboardHandler) RecordSales(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dashboard.RecordSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.dashboardService.RecordSales(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}
