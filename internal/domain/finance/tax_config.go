package finance

import (
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxAdditionalFees bounds the number of named extra fees per organization
const MaxAdditionalFees = 20

// TaxFee is a named extra percentage charged on the sale price
type TaxFee struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TaxConfigID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Percentage  decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	Position    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TaxFee) TableName() string {
	return "tax_fees"
}

// FeeSpec is the input for a new additional fee
type FeeSpec struct {
	Name       string
	Percentage valueobject.Percentage
}

// TaxConfig holds an organization's percentage-based taxes and fees.
// There is at most one per organization.
type TaxConfig struct {
	shared.TenantAggregateRoot
	SalesTax       decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	MarketplaceFee decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	CardFee        decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	AdditionalFees []TaxFee        `gorm:"foreignKey:TaxConfigID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TaxConfig) TableName() string {
	return "tax_configs"
}

// NewTaxConfig creates a tax configuration with all rates at zero
func NewTaxConfig(tenantID uuid.UUID) *TaxConfig {
	return &TaxConfig{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SalesTax:            decimal.Zero,
		MarketplaceFee:      decimal.Zero,
		CardFee:             decimal.Zero,
		AdditionalFees:      []TaxFee{},
	}
}

// SetRates sets the three standard rates
func (tc *TaxConfig) SetRates(salesTax, marketplaceFee, cardFee valueobject.Percentage) {
	tc.SalesTax = salesTax.Decimal()
	tc.MarketplaceFee = marketplaceFee.Decimal()
	tc.CardFee = cardFee.Decimal()
	tc.touch()
}

// SetAdditionalFees replaces the additional fees, keeping the given order
func (tc *TaxConfig) SetAdditionalFees(fees []FeeSpec) error {
	if len(fees) > MaxAdditionalFees {
		return shared.NewDomainError("TOO_MANY_FEES", "Too many additional fees")
	}

	rows := make([]TaxFee, 0, len(fees))
	for i, f := range fees {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return shared.NewDomainError("INVALID_FEE_NAME", "Additional fee name cannot be empty")
		}
		if len(name) > 100 {
			return shared.NewDomainError("INVALID_FEE_NAME", "Additional fee name cannot exceed 100 characters")
		}
		rows = append(rows, TaxFee{
			ID:          uuid.New(),
			TaxConfigID: tc.ID,
			Name:        name,
			Percentage:  f.Percentage.Decimal(),
			Position:    i,
		})
	}

	tc.AdditionalFees = rows
	tc.touch()
	return nil
}

// BlendedPercent is the plain sum of every configured percentage
func (tc *TaxConfig) BlendedPercent() decimal.Decimal {
	total := tc.SalesTax.Add(tc.MarketplaceFee).Add(tc.CardFee)
	for _, f := range tc.AdditionalFees {
		total = total.Add(f.Percentage)
	}
	return total
}

// PricingInput returns the configuration as the tax aggregator consumes it.
// A nil config yields zero rates.
func (tc *TaxConfig) PricingInput() pricing.TaxInput {
	if tc == nil {
		return pricing.TaxInput{}
	}
	fees := make([]pricing.FeeInput, 0, len(tc.AdditionalFees))
	for _, f := range tc.AdditionalFees {
		fees = append(fees, pricing.FeeInput{Name: f.Name, Percentage: f.Percentage.InexactFloat64()})
	}
	return pricing.TaxInput{
		SalesTax:       tc.SalesTax.InexactFloat64(),
		MarketplaceFee: tc.MarketplaceFee.InexactFloat64(),
		CardFee:        tc.CardFee.InexactFloat64(),
		AdditionalFees: fees,
	}
}

func (tc *TaxConfig) touch() {
	tc.MarkModified()
}
