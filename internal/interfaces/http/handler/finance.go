package handler

import (
	financeapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// FinanceHandler serves the fixed cost ledger and the tax configuration
type FinanceHandler struct {
	BaseHandler
	fixedCostService *financeapp.FixedCostService
	taxService       *financeapp.TaxConfigService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(fixedCostService *financeapp.FixedCostService, taxService *financeapp.TaxConfigService) *FinanceHandler {
	return &FinanceHandler{
		fixedCostService: fixedCostService,
		taxService:       taxService,
	}
}

// CreateFixedCost handles POST /finance/fixed-costs
func (h *FinanceHandler) CreateFixedCost(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req financeapp.FixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	cost, err := h.fixedCostService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cost)
}

// GetFixedCost handles GET /finance/fixed-costs/:id
func (h *FinanceHandler) GetFixedCost(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	cost, err := h.fixedCostService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cost)
}

// ListFixedCosts handles GET /finance/fixed-costs
func (h *FinanceHandler) ListFixedCosts(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter financeapp.FixedCostListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = defaultPageSize
	}

	costs, total, err := h.fixedCostService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, costs, total, filter.Page, filter.PageSize)
}

// UpdateFixedCost handles PUT /finance/fixed-costs/:id
func (h *FinanceHandler) UpdateFixedCost(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req financeapp.FixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cost, err := h.fixedCostService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cost)
}

// DeleteFixedCost handles DELETE /finance/fixed-costs/:id
func (h *FinanceHandler) DeleteFixedCost(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.fixedCostService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// FixedCostSummary handles GET /finance/fixed-costs/summary
func (h *FinanceHandler) FixedCostSummary(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	summary, err := h.fixedCostService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetTaxConfig handles GET /finance/tax-config.
// An organization that never saved one gets zero rates with configured=false.
func (h *FinanceHandler) GetTaxConfig(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	cfg, err := h.taxService.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// SaveTaxConfig handles PUT /finance/tax-config
func (h *FinanceHandler) SaveTaxConfig(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req financeapp.TaxConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cfg, err := h.taxService.Upsert(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}
