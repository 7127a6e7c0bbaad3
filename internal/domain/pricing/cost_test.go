package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocate(t *testing.T) {
	policy := DefaultAllocationPolicy()

	t.Run("dampened average share", func(t *testing.T) {
		assert.InDelta(t, 438.3333, policy.Allocate(sampleLedger(), 9), 1e-4)
	})

	t.Run("zero active products", func(t *testing.T) {
		got := policy.Allocate(sampleLedger(), 0)
		assert.Equal(t, 0.0, got)
		assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
	})

	t.Run("negative count", func(t *testing.T) {
		assert.Equal(t, 0.0, policy.Allocate(sampleLedger(), -3))
	})

	t.Run("negative entries are folded in", func(t *testing.T) {
		ledger := []FixedCostInput{{MonthlyValue: 1000}, {MonthlyValue: -400}}
		assert.InDelta(t, 60.0, policy.Allocate(ledger, 1), 1e-9)
	})

	t.Run("empty ledger", func(t *testing.T) {
		assert.Equal(t, 0.0, policy.Allocate(nil, 5))
	})
}

func TestTotalFixedCost(t *testing.T) {
	assert.Equal(t, 39450.0, TotalFixedCost(sampleLedger()))
	assert.Equal(t, 0.0, TotalFixedCost(nil))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		ledger  []FixedCostInput
		percent float64
		status  AllocationStatus
	}{
		{"balanced", sampleLedger(), 100, AllocationBalanced},
		{"under", []FixedCostInput{{MonthlyValue: 10, AllocationPercent: 60}}, 60, AllocationUnder},
		{"over", []FixedCostInput{{AllocationPercent: 70}, {AllocationPercent: 40}}, 110, AllocationOver},
		{"float noise still balanced", []FixedCostInput{{AllocationPercent: 33.33}, {AllocationPercent: 33.33}, {AllocationPercent: 33.34}}, 100, AllocationBalanced},
		{"empty", nil, 0, AllocationUnder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.ledger)
			assert.InDelta(t, tt.percent, s.AllocatedPercent, 1e-9)
			assert.Equal(t, tt.status, s.Status)
			assert.Equal(t, len(tt.ledger), s.Entries)
		})
	}
}

func TestTaxInput_BlendedRate(t *testing.T) {
	assert.InDelta(t, 33.2, sampleTax().BlendedPercent(), 1e-9)
	assert.InDelta(t, 0.332, sampleTax().BlendedRate(), 1e-12)
	assert.Equal(t, 0.0, TaxInput{}.BlendedRate())

	over := TaxInput{SalesTax: 60, MarketplaceFee: 50}
	assert.InDelta(t, 1.1, over.BlendedRate(), 1e-12)
}
