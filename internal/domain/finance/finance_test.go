package finance

import (
	"testing"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixedCost(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates entry", func(t *testing.T) {
		fc, err := NewFixedCost(tenantID, " Aluguel ", FixedCostCategoryRent, decimal.NewFromInt(15000), valueobject.MustNewPercentage(40))
		require.NoError(t, err)
		assert.Equal(t, "Aluguel", fc.Name)
		assert.Equal(t, FixedCostCategoryRent, fc.Category)
		assert.True(t, fc.AllocationPercent.Equal(decimal.NewFromInt(40)))

		in := fc.PricingInput()
		assert.Equal(t, 15000.0, in.MonthlyValue)
		assert.Equal(t, 40.0, in.AllocationPercent)
	})

	t.Run("empty category defaults to other", func(t *testing.T) {
		fc, err := NewFixedCost(tenantID, "Contador", "", decimal.NewFromInt(800), valueobject.MustNewPercentage(5))
		require.NoError(t, err)
		assert.Equal(t, FixedCostCategoryOther, fc.Category)
	})

	t.Run("rejects negative monthly value", func(t *testing.T) {
		_, err := NewFixedCost(tenantID, "Luz", FixedCostCategoryUtilities, decimal.NewFromInt(-1), valueobject.MustNewPercentage(5))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewFixedCost(tenantID, "Luz", "LIGHT", decimal.NewFromInt(10), valueobject.MustNewPercentage(5))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "category")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewFixedCost(tenantID, "  ", FixedCostCategoryOther, decimal.NewFromInt(10), valueobject.MustNewPercentage(5))
		assert.Error(t, err)
	})
}

func TestFixedCost_Update(t *testing.T) {
	fc, err := NewFixedCost(uuid.New(), "Internet", FixedCostCategoryUtilities, decimal.NewFromInt(200), valueobject.MustNewPercentage(2))
	require.NoError(t, err)

	require.NoError(t, fc.Update("Internet fibra", FixedCostCategoryUtilities, decimal.NewFromInt(250), valueobject.MustNewPercentage(3)))
	assert.Equal(t, "Internet fibra", fc.Name)
	assert.Equal(t, 2, fc.GetVersion())

	err = fc.Update("Internet", FixedCostCategoryUtilities, decimal.NewFromInt(-5), valueobject.MustNewPercentage(3))
	assert.Error(t, err)
	assert.Equal(t, 2, fc.GetVersion())
}

func TestLedgerInputs(t *testing.T) {
	tenantID := uuid.New()
	a, _ := NewFixedCost(tenantID, "A", FixedCostCategoryRent, decimal.NewFromInt(100), valueobject.MustNewPercentage(60))
	b, _ := NewFixedCost(tenantID, "B", FixedCostCategorySalary, decimal.NewFromInt(300), valueobject.MustNewPercentage(40))

	inputs := LedgerInputs([]FixedCost{*a, *b})
	require.Len(t, inputs, 2)
	assert.Equal(t, 300.0, inputs[1].MonthlyValue)
	assert.Empty(t, LedgerInputs(nil))
}

func TestTaxConfig(t *testing.T) {
	tc := NewTaxConfig(uuid.New())
	assert.True(t, tc.BlendedPercent().IsZero())

	tc.SetRates(valueobject.MustNewPercentage(12.5), valueobject.MustNewPercentage(16), valueobject.MustNewPercentage(3.5))
	require.NoError(t, tc.SetAdditionalFees([]FeeSpec{
		{Name: "Frete", Percentage: valueobject.MustNewPercentage(1.2)},
	}))

	assert.True(t, tc.BlendedPercent().Equal(decimal.RequireFromString("33.2")), tc.BlendedPercent().String())
	require.Len(t, tc.AdditionalFees, 1)
	assert.Equal(t, tc.ID, tc.AdditionalFees[0].TaxConfigID)
	assert.Equal(t, 0, tc.AdditionalFees[0].Position)

	in := tc.PricingInput()
	assert.InDelta(t, 0.332, in.BlendedRate(), 1e-12)
	assert.Equal(t, "Frete", in.AdditionalFees[0].Name)
}

func TestTaxConfig_SetAdditionalFeesValidation(t *testing.T) {
	tc := NewTaxConfig(uuid.New())

	err := tc.SetAdditionalFees([]FeeSpec{{Name: " ", Percentage: valueobject.MustNewPercentage(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")

	many := make([]FeeSpec, MaxAdditionalFees+1)
	for i := range many {
		many[i] = FeeSpec{Name: "fee", Percentage: valueobject.MustNewPercentage(0.1)}
	}
	assert.Error(t, tc.SetAdditionalFees(many))
}

func TestTaxConfig_NilPricingInput(t *testing.T) {
	var tc *TaxConfig
	assert.Equal(t, 0.0, tc.PricingInput().BlendedRate())
}
