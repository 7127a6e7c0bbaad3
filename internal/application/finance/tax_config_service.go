package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/finance"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxConfigService reads and replaces the organization's tax configuration
type TaxConfigService struct {
	taxRepo finance.TaxConfigRepository
}

// NewTaxConfigService creates a new TaxConfigService
func NewTaxConfigService(taxRepo finance.TaxConfigRepository) *TaxConfigService {
	return &TaxConfigService{taxRepo: taxRepo}
}

// FeeRequest is one named additional fee
type FeeRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=100"`
	Percentage float64 `json:"percentage" binding:"percentage"`
}

// TaxConfigRequest replaces the whole configuration
type TaxConfigRequest struct {
	SalesTax       float64      `json:"sales_tax" binding:"percentage"`
	MarketplaceFee float64      `json:"marketplace_fee" binding:"percentage"`
	CardFee        float64      `json:"card_fee" binding:"percentage"`
	AdditionalFees []FeeRequest `json:"additional_fees" binding:"max=20,dive"`
}

// FeeResponse is one additional fee in API responses
type FeeResponse struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TaxConfigResponse represents the tax configuration in API responses.
// BlendedPercent is the plain sum of every rate, BlendedRate the same as a fraction.
type TaxConfigResponse struct {
	SalesTax       decimal.Decimal `json:"sales_tax"`
	MarketplaceFee decimal.Decimal `json:"marketplace_fee"`
	CardFee        decimal.Decimal `json:"card_fee"`
	AdditionalFees []FeeResponse   `json:"additional_fees"`
	BlendedPercent decimal.Decimal `json:"blended_percent"`
	BlendedRate    decimal.Decimal `json:"blended_rate"`
	Configured     bool            `json:"configured"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

func toTaxConfigResponse(tc *finance.TaxConfig, configured bool) TaxConfigResponse {
	fees := make([]FeeResponse, len(tc.AdditionalFees))
	for i, f := range tc.AdditionalFees {
		fees[i] = FeeResponse{Name: f.Name, Percentage: f.Percentage}
	}

	blended := tc.BlendedPercent()
	response := TaxConfigResponse{
		SalesTax:       tc.SalesTax,
		MarketplaceFee: tc.MarketplaceFee,
		CardFee:        tc.CardFee,
		AdditionalFees: fees,
		BlendedPercent: blended,
		BlendedRate:    blended.Div(decimal.NewFromInt(100)),
		Configured:     configured,
	}
	if configured {
		updatedAt := tc.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	return response
}

// Get returns the configuration. An organization that never saved one gets
// all rates at zero.
func (s *TaxConfigService) Get(ctx context.Context, tenantID uuid.UUID) (*TaxConfigResponse, error) {
	tc, err := s.taxRepo.FindByTenant(ctx, tenantID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		response := toTaxConfigResponse(finance.NewTaxConfig(tenantID), false)
		return &response, nil
	case err != nil:
		return nil, err
	}

	response := toTaxConfigResponse(tc, true)
	return &response, nil
}

// Upsert validates every percentage and replaces the configuration,
// creating it on first use.
func (s *TaxConfigService) Upsert(ctx context.Context, tenantID uuid.UUID, req TaxConfigRequest) (*TaxConfigResponse, error) {
	salesTax, err := ratePercentage("sales_tax", req.SalesTax)
	if err != nil {
		return nil, err
	}
	marketplaceFee, err := ratePercentage("marketplace_fee", req.MarketplaceFee)
	if err != nil {
		return nil, err
	}
	cardFee, err := ratePercentage("card_fee", req.CardFee)
	if err != nil {
		return nil, err
	}

	fees := make([]finance.FeeSpec, 0, len(req.AdditionalFees))
	for i, f := range req.AdditionalFees {
		p, err := ratePercentage(fmt.Sprintf("additional_fees[%d]", i), f.Percentage)
		if err != nil {
			return nil, err
		}
		fees = append(fees, finance.FeeSpec{Name: f.Name, Percentage: p})
	}

	tc, err := s.taxRepo.FindByTenant(ctx, tenantID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		tc = finance.NewTaxConfig(tenantID)
	case err != nil:
		return nil, err
	}

	tc.SetRates(salesTax, marketplaceFee, cardFee)
	if err := tc.SetAdditionalFees(fees); err != nil {
		return nil, err
	}

	if err := s.taxRepo.Save(ctx, tc); err != nil {
		return nil, err
	}

	response := toTaxConfigResponse(tc, true)
	return &response, nil
}

// BlendedRate returns the organization's blended tax rate as a fraction.
// Missing configuration means zero.
func (s *TaxConfigService) BlendedRate(ctx context.Context, tenantID uuid.UUID) (float64, error) {
	tc, err := s.taxRepo.FindByTenant(ctx, tenantID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return tc.PricingInput().BlendedRate(), nil
}

func ratePercentage(field string, v float64) (valueobject.Percentage, error) {
	p, err := valueobject.NewPercentage(v)
	if err != nil {
		return valueobject.Percentage{}, shared.NewDomainError("INVALID_RATE", fmt.Sprintf("%s must be between 0 and 100", field))
	}
	return p, nil
}
