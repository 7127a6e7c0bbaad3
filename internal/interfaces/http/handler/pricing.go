package handler

import (
	pricingapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/pricing"
	"github.com/gin-gonic/gin"
)

// PricingHandler serves suggested prices
type PricingHandler struct {
	BaseHandler
	calculator *pricingapp.CalculatorService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(calculator *pricingapp.CalculatorService) *PricingHandler {
	return &PricingHandler{calculator: calculator}
}

// QuoteProduct handles GET /pricing/products/:id/quote?margin=
func (h *PricingHandler) QuoteProduct(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req pricingapp.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quote, err := h.calculator.Quote(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// QuoteAdhoc handles POST /pricing/quote
func (h *PricingHandler) QuoteAdhoc(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req pricingapp.AdhocQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quote, err := h.calculator.QuoteAdhoc(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// QuoteCatalog handles GET /pricing/catalog?margin=
func (h *PricingHandler) QuoteCatalog(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req pricingapp.CatalogQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.calculator.QuoteCatalog(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
