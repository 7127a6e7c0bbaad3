package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodLayout is the layout of a sales period (year and month)
const PeriodLayout = "2006-01"

// MonthlySales is the quantity of one product sold in one month, with the
// unit price and unit cost in effect for that month.
type MonthlySales struct {
	shared.BaseEntity
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_sales_product_period,priority:1"`
	Period    string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_monthly_sales_product_period,priority:2;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (MonthlySales) TableName() string {
	return "monthly_sales"
}

// NewMonthlySales validates and creates a sales record
func NewMonthlySales(tenantID, productID uuid.UUID, period string, quantity, unitPrice, unitCost decimal.Decimal) (*MonthlySales, error) {
	if _, err := ParsePeriod(period); err != nil {
		return nil, err
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.IsNegative() || unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Unit price and cost cannot be negative")
	}

	return &MonthlySales{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ProductID:  productID,
		Period:     period,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		UnitCost:   unitCost,
	}, nil
}

// ParsePeriod parses a YYYY-MM period
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(PeriodLayout, period)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Period %q must be formatted as YYYY-MM", period))
	}
	return t, nil
}

// Revenue is quantity times unit price
func (s *MonthlySales) Revenue() decimal.Decimal {
	return s.Quantity.Mul(s.UnitPrice)
}

// PricingInput returns the record as the series builder consumes it
func (s *MonthlySales) PricingInput() pricing.SalesInput {
	return pricing.SalesInput{
		Period:    s.Period,
		Quantity:  s.Quantity.InexactFloat64(),
		UnitPrice: s.UnitPrice.InexactFloat64(),
		UnitCost:  s.UnitCost.InexactFloat64(),
	}
}

// SeriesInputs converts records for pricing.BuildSeries
func SeriesInputs(records []MonthlySales) []pricing.SalesInput {
	inputs := make([]pricing.SalesInput, 0, len(records))
	for i := range records {
		inputs = append(inputs, records[i].PricingInput())
	}
	return inputs
}

// MonthlySalesRepository defines the interface for sales persistence
type MonthlySalesRepository interface {
	// Upsert stores the record, replacing the figures of any record for the
	// same product and period. record is left holding the stored row, so an
	// update keeps the original ID.
	Upsert(ctx context.Context, record *MonthlySales) error
	// FindInRange returns records with from <= period <= to; empty bounds are open
	FindInRange(ctx context.Context, tenantID uuid.UUID, from, to string) ([]MonthlySales, error)
}
