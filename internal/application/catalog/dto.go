package catalog

import (
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code         string           `json:"code" binding:"required,min=1,max=50"`
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Description  string           `json:"description" binding:"max=2000"`
	Category     string           `json:"category" binding:"max=100"`
	SupplierID   *uuid.UUID       `json:"supplier_id"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost"`
	VariableCost *decimal.Decimal `json:"variable_cost"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	CreatedBy    *uuid.UUID       `json:"-"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
	ClearSupplier bool             `json:"clear_supplier"`
	PurchaseCost  *decimal.Decimal `json:"purchase_cost"`
	VariableCost  *decimal.Decimal `json:"variable_cost"`
}

// UpdatePriceRequest represents a request to change a product's sale price
type UpdatePriceRequest struct {
	SalePrice *decimal.Decimal `json:"sale_price" binding:"required"`
	Reason    string           `json:"reason" binding:"max=200"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	VariableCost decimal.Decimal `json:"variable_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	UnitProfit   decimal.Decimal `json:"unit_profit"`
	UnitMargin   decimal.Decimal `json:"unit_margin"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	VariableCost decimal.Decimal `json:"variable_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	Category   string `form:"category"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PriceHistoryResponse is one entry of a product's price log
type PriceHistoryResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	OldPrice      decimal.Decimal `json:"old_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Reason        string          `json:"reason"`
	ChangedAt     time.Time       `json:"changed_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	priced := p.Priced()
	return ProductResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		SupplierID:   p.SupplierID,
		PurchaseCost: p.PurchaseCost,
		VariableCost: p.VariableCost,
		SalePrice:    p.SalePrice,
		UnitProfit:   decimal.NewFromFloat(priced.UnitProfit()).Round(pricing.MoneyPlaces),
		UnitMargin:   decimal.NewFromFloat(priced.UnitMargin()).Round(pricing.MarginPlaces),
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Category:     p.Category,
		PurchaseCost: p.PurchaseCost,
		VariableCost: p.VariableCost,
		SalePrice:    p.SalePrice,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductListResponses converts a slice of domain Products to ProductListResponses
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}

// ToPriceHistoryResponses converts price log entries
func ToPriceHistoryResponses(entries []catalog.PriceHistory) []PriceHistoryResponse {
	responses := make([]PriceHistoryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		responses[i] = PriceHistoryResponse{
			ID:            e.ID,
			ProductID:     e.ProductID,
			OldPrice:      e.OldPrice,
			NewPrice:      e.NewPrice,
			ChangePercent: e.ChangePercent(),
			Reason:        e.Reason,
			ChangedAt:     e.ChangedAt,
		}
	}
	return responses
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Notes       string `json:"notes" binding:"max=2000"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,max=200"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
	IsActive    *bool   `json:"is_active"`
}

// SupplierListFilter represents filter options for supplier list
type SupplierListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Notes       string    `json:"notes"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *catalog.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Notes:       s.Notes,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of domain Suppliers
func ToSupplierResponses(suppliers []catalog.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}
