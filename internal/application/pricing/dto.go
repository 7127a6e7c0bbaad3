package pricing

import (
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteRequest asks for the suggested price of a stored product.
// A nil margin uses the configured default.
type QuoteRequest struct {
	DesiredMarginPercent *float64 `json:"desired_margin_percent" form:"margin" binding:"omitempty,percentage"`
}

// AdhocQuoteRequest prices figures that are not stored as a product.
// Without a scenario the organization's fixed costs, active product count
// and tax configuration are used.
type AdhocQuoteRequest struct {
	PurchaseCost         decimal.Decimal `json:"purchase_cost"`
	VariableCost         decimal.Decimal `json:"variable_cost"`
	CurrentPrice         decimal.Decimal `json:"current_price"`
	DesiredMarginPercent *float64        `json:"desired_margin_percent" binding:"omitempty,percentage"`
	Scenario             *Scenario       `json:"scenario"`
}

// Scenario replaces the stored organization figures in an ad-hoc quote
type Scenario struct {
	FixedCosts         []ScenarioFixedCost `json:"fixed_costs" binding:"dive"`
	ActiveProductCount int                 `json:"active_product_count" binding:"min=0"`
	SalesTax           float64             `json:"sales_tax" binding:"percentage"`
	MarketplaceFee     float64             `json:"marketplace_fee" binding:"percentage"`
	CardFee            float64             `json:"card_fee" binding:"percentage"`
	AdditionalFees     []float64           `json:"additional_fees" binding:"max=20,dive,percentage"`
}

// ScenarioFixedCost is one fixed cost of a Scenario
type ScenarioFixedCost struct {
	MonthlyValue      float64 `json:"monthly_value" binding:"min=0"`
	AllocationPercent float64 `json:"allocation_percent" binding:"percentage"`
}

// CatalogQuoteRequest asks for suggested prices of every active product
type CatalogQuoteRequest struct {
	DesiredMarginPercent *float64 `json:"desired_margin_percent" form:"margin" binding:"omitempty,percentage"`
}

// QuoteResponse is a solved price with the inputs that produced it
type QuoteResponse struct {
	ProductID            *uuid.UUID `json:"product_id,omitempty"`
	DesiredMarginPercent float64    `json:"desired_margin_percent"`
	ActiveProductCount   int        `json:"active_product_count"`
	pricing.Quote
}

// QuoteError describes why one catalog item could not be priced
type QuoteError struct {
	Code          string   `json:"code"`
	Message       string   `json:"message"`
	MarginCeiling *float64 `json:"margin_ceiling,omitempty"`
}

// CatalogQuoteItem is one product of a catalog quote; exactly one of Quote
// and Error is set.
type CatalogQuoteItem struct {
	ProductID uuid.UUID      `json:"product_id"`
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	Quote     *pricing.Quote `json:"quote,omitempty"`
	Error     *QuoteError    `json:"error,omitempty"`
}

// CatalogQuoteResponse prices the whole active catalog
type CatalogQuoteResponse struct {
	DesiredMarginPercent float64            `json:"desired_margin_percent"`
	ActiveProductCount   int                `json:"active_product_count"`
	AllocatedFixedCost   decimal.Decimal    `json:"allocated_fixed_cost"`
	BlendedTaxPercent    decimal.Decimal    `json:"blended_tax_percent"`
	Items                []CatalogQuoteItem `json:"items"`
	Failed               int                `json:"failed"`
}
