package finance

import (
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedCostCategory groups fixed costs on the dashboard
type FixedCostCategory string

const (
	FixedCostCategoryRent      FixedCostCategory = "RENT"
	FixedCostCategoryUtilities FixedCostCategory = "UTILITIES"
	FixedCostCategorySalary    FixedCostCategory = "SALARY"
	FixedCostCategorySoftware  FixedCostCategory = "SOFTWARE"
	FixedCostCategoryMarketing FixedCostCategory = "MARKETING"
	FixedCostCategoryOther     FixedCostCategory = "OTHER"
)

// IsValid checks if the category is a valid FixedCostCategory
func (c FixedCostCategory) IsValid() bool {
	switch c {
	case FixedCostCategoryRent, FixedCostCategoryUtilities, FixedCostCategorySalary,
		FixedCostCategorySoftware, FixedCostCategoryMarketing, FixedCostCategoryOther:
		return true
	}
	return false
}

// FixedCost is one monthly overhead entry of the organization's ledger.
// AllocationPercent is meant to sum to 100 across the ledger; that is
// reported, never enforced.
type FixedCost struct {
	shared.TenantAggregateRoot
	Name              string            `gorm:"type:varchar(200);not null"`
	Category          FixedCostCategory `gorm:"type:varchar(20);not null;default:'OTHER'"`
	MonthlyValue      decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AllocationPercent decimal.Decimal   `gorm:"type:decimal(7,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (FixedCost) TableName() string {
	return "fixed_costs"
}

// NewFixedCost creates a ledger entry. The monthly value must not be negative
// and the allocation must be a valid percentage.
func NewFixedCost(
	tenantID uuid.UUID,
	name string,
	category FixedCostCategory,
	monthlyValue decimal.Decimal,
	allocation valueobject.Percentage,
) (*FixedCost, error) {
	fc := &FixedCost{TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID)}
	if err := fc.apply(name, category, monthlyValue, allocation); err != nil {
		return nil, err
	}
	return fc, nil
}

// Update replaces every editable field
func (fc *FixedCost) Update(
	name string,
	category FixedCostCategory,
	monthlyValue decimal.Decimal,
	allocation valueobject.Percentage,
) error {
	if err := fc.apply(name, category, monthlyValue, allocation); err != nil {
		return err
	}
	fc.MarkModified()
	return nil
}

func (fc *FixedCost) apply(name string, category FixedCostCategory, monthlyValue decimal.Decimal, allocation valueobject.Percentage) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Fixed cost name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Fixed cost name cannot exceed 200 characters")
	}
	if category == "" {
		category = FixedCostCategoryOther
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid fixed cost category")
	}
	if monthlyValue.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Monthly value cannot be negative")
	}

	fc.Name = name
	fc.Category = category
	fc.MonthlyValue = monthlyValue
	fc.AllocationPercent = allocation.Decimal()
	return nil
}

// PricingInput returns the entry as the cost aggregator consumes it
func (fc *FixedCost) PricingInput() pricing.FixedCostInput {
	return pricing.FixedCostInput{
		MonthlyValue:      fc.MonthlyValue.InexactFloat64(),
		AllocationPercent: fc.AllocationPercent.InexactFloat64(),
	}
}

// LedgerInputs converts a ledger for the pricing engine
func LedgerInputs(costs []FixedCost) []pricing.FixedCostInput {
	inputs := make([]pricing.FixedCostInput, 0, len(costs))
	for i := range costs {
		inputs = append(inputs, costs[i].PricingInput())
	}
	return inputs
}
