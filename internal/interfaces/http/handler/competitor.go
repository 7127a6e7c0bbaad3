package handler

import (
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/competitor"
	"github.com/gin-gonic/gin"
)

// CompetitorHandler records competitor prices and compares the catalog with them
type CompetitorHandler struct {
	BaseHandler
	competitorService *competitor.CompetitorService
}

// NewCompetitorHandler creates a new CompetitorHandler
func NewCompetitorHandler(competitorService *competitor.CompetitorService) *CompetitorHandler {
	return &CompetitorHandler{competitorService: competitorService}
}

// Compare handles GET /competitors
func (h *CompetitorHandler) Compare(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	rows, err := h.competitorService.Compare(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Record handles POST /competitors
func (h *CompetitorHandler) Record(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req competitor.RecordObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	observation, err := h.competitorService.Record(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, observation)
}

// History handles GET /competitors/products/:id/history
func (h *CompetitorHandler) History(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	limit, err := queryLimit(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, err := h.competitorService.History(c.Request.Context(), tenantID, productID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// Delete handles DELETE /competitors/observations/:id
func (h *CompetitorHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.competitorService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
