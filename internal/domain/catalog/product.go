package catalog

import (
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is a sellable item with its direct costs and current sale price.
// Only active products share the fixed-cost pool.
type Product struct {
	shared.TenantAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100);index"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index"`
	PurchaseCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	VariableCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // packaging, freight, per-unit extras
	SalePrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product with zero costs and price
func NewProduct(tenantID uuid.UUID, code, name string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		PurchaseCost:        decimal.Zero,
		VariableCost:        decimal.Zero,
		SalePrice:           decimal.Zero,
		Status:              ProductStatusActive,
	}

	product.AddDomainEvent(newProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.touch()

	return nil
}

// SetSupplier links the product to a supplier, nil clears it
func (p *Product) SetSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.touch()
}

// SetCosts sets the purchase and variable cost per unit
func (p *Product) SetCosts(purchaseCost, variableCost decimal.Decimal) error {
	if purchaseCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Purchase cost cannot be negative")
	}
	if variableCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Variable cost cannot be negative")
	}

	p.PurchaseCost = purchaseCost
	p.VariableCost = variableCost
	p.touch()

	return nil
}

// SetSalePrice changes the sale price and records a price change event.
// Setting the same price again is a no-op.
func (p *Product) SetSalePrice(price decimal.Decimal, reason string) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if price.Equal(p.SalePrice) {
		return nil
	}

	oldPrice := p.SalePrice
	p.SalePrice = price
	p.touch()

	p.AddDomainEvent(newProductPriceChangedEvent(p, oldPrice, reason))

	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.touch()

	p.AddDomainEvent(newProductStatusChangedEvent(p, oldStatus, ProductStatusActive))

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.touch()

	p.AddDomainEvent(newProductStatusChangedEvent(p, oldStatus, ProductStatusInactive))

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// PricingInput returns the figures the pricing engine consumes
func (p *Product) PricingInput() pricing.ProductInput {
	return pricing.ProductInput{
		PurchaseCost: p.PurchaseCost.InexactFloat64(),
		VariableCost: p.VariableCost.InexactFloat64(),
		CurrentPrice: p.SalePrice.InexactFloat64(),
	}
}

// Priced returns the product as seen by dashboard metrics
func (p *Product) Priced() pricing.PricedProduct {
	return pricing.PricedProduct{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.SalePrice.InexactFloat64(),
		PurchaseCost: p.PurchaseCost.InexactFloat64(),
		VariableCost: p.VariableCost.InexactFloat64(),
	}
}

func (p *Product) touch() {
	p.MarkModified()
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
