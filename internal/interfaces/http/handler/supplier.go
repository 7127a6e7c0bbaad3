package handler

import (
	catalogapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles supplier-related API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *catalogapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *catalogapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create handles POST /catalog/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req catalogapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// GetByID handles GET /catalog/suppliers/:id
func (h *SupplierHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	supplierID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List handles GET /catalog/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter catalogapp.SupplierListFilter
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

	suppliers, total, err := h.supplierService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, suppliers, total, filter.Page, filter.PageSize)
}

// Update handles PUT /catalog/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	supplierID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), tenantID, supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Delete handles DELETE /catalog/suppliers/:id.
// Products that referenced the supplier keep existing without one.
func (h *SupplierHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	supplierID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), tenantID, supplierID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
