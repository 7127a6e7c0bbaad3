package pricing

import (
	"fmt"
	"math"
)

// FixedCostInput is one entry of an organization's fixed-cost ledger
type FixedCostInput struct {
	MonthlyValue      float64
	AllocationPercent float64
}

// AllocationStatus describes how the ledger's allocation percentages add up
type AllocationStatus string

const (
	AllocationBalanced AllocationStatus = "balanced"
	AllocationUnder    AllocationStatus = "under_allocated"
	AllocationOver     AllocationStatus = "over_allocated"
)

// AllocationSummary aggregates the ledger without rejecting anything
type AllocationSummary struct {
	TotalMonthly     float64          `json:"total_monthly"`
	AllocatedPercent float64          `json:"allocated_percent"`
	Status           AllocationStatus `json:"status"`
	Entries          int              `json:"entries"`
}

// TotalFixedCost sums monthly values. Negative entries are folded in as-is.
func TotalFixedCost(costs []FixedCostInput) float64 {
	var total float64
	for _, c := range costs {
		total += c.MonthlyValue
	}
	return total
}

// Allocate returns the fixed cost charged to one product: the average share
// of the pool across active products, dampened by the policy factor.
// A non-positive product count yields zero.
func (p AllocationPolicy) Allocate(costs []FixedCostInput, activeProductCount int) float64 {
	if activeProductCount <= 0 {
		return 0
	}
	average := TotalFixedCost(costs) / float64(activeProductCount)
	return average * p.DampeningFactor
}

// Summarize reports the pool total and whether allocation percentages reach
// AllocationTarget. An empty ledger is under-allocated.
func Summarize(costs []FixedCostInput) AllocationSummary {
	var percent float64
	for _, c := range costs {
		percent += c.AllocationPercent
	}

	var status AllocationStatus
	switch {
	case math.Abs(percent-AllocationTarget) <= AllocationTolerance:
		status = AllocationBalanced
	case percent < AllocationTarget:
		status = AllocationUnder
	default:
		status = AllocationOver
	}

	return AllocationSummary{
		TotalMonthly:     TotalFixedCost(costs),
		AllocatedPercent: percent,
		Status:           status,
		Entries:          len(costs),
	}
}

func fixedCostWarnings(costs []FixedCostInput, activeProductCount int, ws *warnings) {
	for i, c := range costs {
		ws.nonNegative(fmt.Sprintf("fixed_costs[%d].monthly_value", i), c.MonthlyValue)
		ws.percentRange(fmt.Sprintf("fixed_costs[%d].allocation_percent", i), c.AllocationPercent)
	}
	if activeProductCount <= 0 && TotalFixedCost(costs) != 0 {
		*ws = append(*ws, InvalidInputWarning{
			Field:  "active_product_count",
			Value:  float64(activeProductCount),
			Reason: reasonNoActiveItem,
		})
	}
}
