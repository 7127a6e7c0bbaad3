package pricing

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func TestSolve(t *testing.T) {
	t.Run("simple margin and tax", func(t *testing.T) {
		res, err := Solve(SolveInput{
			PurchaseCost:         80,
			VariableCost:         20,
			BlendedTaxRate:       0.10,
			DesiredMarginPercent: 20,
		})
		require.NoError(t, err)

		assertDecimal(t, "100", res.TotalCost)
		assertDecimal(t, "142.86", res.SuggestedPrice)
		assertDecimal(t, "14.29", res.TaxAmount)
		assertDecimal(t, "28.57", res.ProfitPerUnit)
		assertDecimal(t, "20", res.RealMargin)
		assert.False(t, res.Suspect())
	})

	t.Run("zero cost gives zero price", func(t *testing.T) {
		res, err := Solve(SolveInput{BlendedTaxRate: 0.2, DesiredMarginPercent: 30})
		require.NoError(t, err)
		assert.True(t, res.SuggestedPrice.IsZero())
		assert.True(t, res.RealMargin.IsZero())
	})

	t.Run("margin plus tax at exactly 100% is unsolvable", func(t *testing.T) {
		_, err := Solve(SolveInput{PurchaseCost: 10, BlendedTaxRate: 0.5, DesiredMarginPercent: 50})
		require.Error(t, err)

		var unsolvable *UnsolvableMarginError
		require.True(t, errors.As(err, &unsolvable))
		assert.Equal(t, 50.0, unsolvable.DesiredMarginPercent)
		assert.Equal(t, 0.5, unsolvable.BlendedTaxRate)
		assert.InDelta(t, 50.0, unsolvable.MarginCeiling(), 1e-9)
		assert.ErrorIs(t, err, ErrUnsolvableMargin)
	})

	t.Run("non-finite input is rejected", func(t *testing.T) {
		_, err := Solve(SolveInput{PurchaseCost: math.NaN(), DesiredMarginPercent: 10})
		assert.ErrorIs(t, err, ErrNonFiniteInput)

		_, err = Solve(SolveInput{PurchaseCost: 10, BlendedTaxRate: math.Inf(1)})
		assert.ErrorIs(t, err, ErrNonFiniteInput)
	})

	t.Run("negative cost is computed but flagged", func(t *testing.T) {
		res, err := Solve(SolveInput{PurchaseCost: -10, VariableCost: 50, DesiredMarginPercent: 20})
		require.NoError(t, err)
		assertDecimal(t, "50", res.SuggestedPrice)
		require.True(t, res.Suspect())
		assert.Equal(t, "purchase_cost", res.Warnings[0].Field)
		assert.Equal(t, reasonNegative, res.Warnings[0].Reason)
	})

	t.Run("out of range margin is flagged", func(t *testing.T) {
		res, err := Solve(SolveInput{PurchaseCost: 10, DesiredMarginPercent: -5})
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "desired_margin_percent", res.Warnings[0].Field)
		assert.Equal(t, reasonOutOfRange, res.Warnings[0].Reason)
	})

	t.Run("rounds half away from zero only at the end", func(t *testing.T) {
		// 1.005 / (1 - 0) stays 1.005 before rounding
		res, err := Solve(SolveInput{PurchaseCost: 1.005})
		require.NoError(t, err)
		assertDecimal(t, "1.01", res.SuggestedPrice)
	})
}

func TestScenarioUnsolvableMargin(t *testing.T) {
	tax := TaxInput{SalesTax: 12.5, MarketplaceFee: 16, CardFee: 3.5, AdditionalFees: []FeeInput{{Name: "Frete", Percentage: 1.2}}}

	_, err := ComputePricing(ProductInput{PurchaseCost: 1200, VariableCost: 45}, nil, 9, tax, 70)
	require.Error(t, err)

	var unsolvable *UnsolvableMarginError
	require.ErrorAs(t, err, &unsolvable)
	assert.InDelta(t, 0.332, unsolvable.BlendedTaxRate, 1e-9)
	assert.Contains(t, err.Error(), "70.0% margin")
}

func TestSolve_MarginPlusTaxSummingTo100(t *testing.T) {
	for k := 0; k <= 1000; k++ {
		taxPercent := float64(k) / 10
		margin := float64(1000-k) / 10
		tax := TaxInput{SalesTax: taxPercent}

		_, err := Solve(SolveInput{PurchaseCost: 1200, VariableCost: 45, BlendedTaxRate: tax.BlendedRate(), DesiredMarginPercent: margin})
		require.ErrorIs(t, err, ErrUnsolvableMargin, "tax %v%% margin %v%%", taxPercent, margin)
	}

	t.Run("split across several fees", func(t *testing.T) {
		tax := TaxInput{SalesTax: 12.5, MarketplaceFee: 16, CardFee: 3.5, AdditionalFees: []FeeInput{{Name: "Frete", Percentage: 1.2}}}
		_, err := ComputePricing(ProductInput{PurchaseCost: 1200, VariableCost: 45}, []FixedCostInput{{MonthlyValue: 39450}}, 9, tax, 66.8)
		require.ErrorIs(t, err, ErrUnsolvableMargin)
	})

	t.Run("just below the boundary still solves", func(t *testing.T) {
		res, err := Solve(SolveInput{PurchaseCost: 10, BlendedTaxRate: 0.332, DesiredMarginPercent: 66.7})
		require.NoError(t, err)
		assertDecimal(t, "10000", res.SuggestedPrice)
	})
}

func TestSolveProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))

	randomInput := func() SolveInput {
		tax := rng.Float64() * 0.6
		m := rng.Float64() * (0.99 - tax)
		return SolveInput{
			PurchaseCost:         rng.Float64() * 5000,
			VariableCost:         rng.Float64() * 500,
			AllocatedFixedCost:   rng.Float64() * 1000,
			BlendedTaxRate:       tax,
			DesiredMarginPercent: m * 100,
		}
	}

	t.Run("suggested price round-trips to total cost", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			in := randomInput()
			res, err := Solve(in)
			require.NoError(t, err)

			totalCost := in.PurchaseCost + in.VariableCost + in.AllocatedFixedCost
			back := res.SuggestedPrice.InexactFloat64() * (1 - in.BlendedTaxRate - in.DesiredMarginPercent/100)
			assert.InDelta(t, totalCost, back, 0.01, "input %+v", in)
		}
	})

	t.Run("margin plus tax at or above 100% never yields a price", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			tax := rng.Float64() * 1.5
			margin := (1 - tax + rng.Float64()) * 100
			res, err := Solve(SolveInput{PurchaseCost: rng.Float64() * 1000, BlendedTaxRate: tax, DesiredMarginPercent: margin})
			require.ErrorIs(t, err, ErrUnsolvableMargin)
			assert.True(t, res.SuggestedPrice.IsZero())
		}
	})

	t.Run("identical inputs give identical results", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			in := randomInput()
			first, err1 := Solve(in)
			second, err2 := Solve(in)
			require.NoError(t, err1)
			require.NoError(t, err2)
			assert.Equal(t, first, second)
		}
	})

	t.Run("higher margin strictly raises the price", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			in := randomInput()
			in.PurchaseCost += 10
			in.BlendedTaxRate = 0.2
			previous := decimal.NewFromInt(-1)
			for margin := 0.0; margin < 79; margin++ {
				in.DesiredMarginPercent = margin
				res, err := Solve(in)
				require.NoError(t, err)
				assert.True(t, res.SuggestedPrice.GreaterThan(previous),
					"margin %v: %s not above %s", margin, res.SuggestedPrice, previous)
				previous = res.SuggestedPrice
			}
		}
	})
}
