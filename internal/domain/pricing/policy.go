// Package pricing contains the pricing calculation engine: fixed-cost
// allocation, blended tax aggregation, the margin solver and the metrics
// derived from solved prices. Everything here is pure computation over the
// values passed in; callers own fetching the records.
package pricing

// Named policy values.
const (
	// DefaultDampeningFactor is the share of the average per-product
	// overhead that is charged to a single product's cost base.
	DefaultDampeningFactor = 0.10

	// CompetitiveThreshold is the highest price difference (percent above
	// the competitor) still classified as competitive.
	CompetitiveThreshold = 0.0

	// AttentionThreshold is the highest price difference classified as
	// needing attention. Anything above is above market.
	AttentionThreshold = 5.0

	// AllocationTarget is the intended sum of all fixed-cost allocation
	// percentages for one organization.
	AllocationTarget = 100.0

	// AllocationTolerance absorbs float noise when comparing the allocation
	// sum against AllocationTarget.
	AllocationTolerance = 0.01

	// SolveTolerance is the smallest price share (1 - margin - tax) still
	// treated as solvable. Shares at or below it count as margin plus tax
	// reaching 100%.
	SolveTolerance = 1e-9

	// MoneyPlaces is the number of decimals kept on monetary outputs.
	MoneyPlaces int32 = 2

	// MarginPlaces is the number of decimals kept on percentage outputs.
	MarginPlaces int32 = 1
)

// AllocationPolicy controls how the fixed-cost pool is charged to products.
type AllocationPolicy struct {
	DampeningFactor float64
}

// DefaultAllocationPolicy returns the policy using DefaultDampeningFactor
func DefaultAllocationPolicy() AllocationPolicy {
	return AllocationPolicy{DampeningFactor: DefaultDampeningFactor}
}
