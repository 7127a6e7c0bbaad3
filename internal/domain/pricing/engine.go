package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ProductInput holds the per-product figures the engine needs
type ProductInput struct {
	PurchaseCost float64
	VariableCost float64
	CurrentPrice float64
}

// PriceChange compares the suggested price with the current one
type PriceChange struct {
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// Quote is a solved price plus the aggregated inputs that produced it
type Quote struct {
	Result
	AllocatedFixedCost decimal.Decimal `json:"allocated_fixed_cost"`
	BlendedTaxPercent  decimal.Decimal `json:"blended_tax_percent"`
	CurrentPrice       decimal.Decimal `json:"current_price"`
	PriceChange        PriceChange     `json:"price_change"`
}

// Engine composes the aggregators and the solver under one allocation policy.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	policy     AllocationPolicy
	maxWorkers int
}

// NewEngine creates an Engine. maxWorkers bounds ComputeCatalog concurrency;
// values below 1 fall back to 1.
func NewEngine(policy AllocationPolicy, maxWorkers int) *Engine {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Engine{policy: policy, maxWorkers: maxWorkers}
}

// Policy returns the allocation policy in use
func (e *Engine) Policy() AllocationPolicy {
	return e.policy
}

// ComputePricing prices one product with the default allocation policy
func ComputePricing(
	product ProductInput,
	fixedCosts []FixedCostInput,
	activeProductCount int,
	tax TaxInput,
	desiredMarginPercent float64,
) (Quote, error) {
	return NewEngine(DefaultAllocationPolicy(), 1).Compute(product, fixedCosts, activeProductCount, tax, desiredMarginPercent)
}

// Compute prices one product: allocate fixed costs, blend the tax rate and
// solve for the price that leaves the desired margin.
func (e *Engine) Compute(
	product ProductInput,
	fixedCosts []FixedCostInput,
	activeProductCount int,
	tax TaxInput,
	desiredMarginPercent float64,
) (Quote, error) {
	allocated := e.policy.Allocate(fixedCosts, activeProductCount)
	return e.computeWith(product, allocated, tax, desiredMarginPercent, sharedWarnings(fixedCosts, activeProductCount, tax))
}

func (e *Engine) computeWith(product ProductInput, allocated float64, tax TaxInput, margin float64, shared warnings) (Quote, error) {
	in := SolveInput{
		PurchaseCost:         product.PurchaseCost,
		VariableCost:         product.VariableCost,
		AllocatedFixedCost:   allocated,
		BlendedTaxRate:       tax.BlendedRate(),
		DesiredMarginPercent: margin,
	}

	ws := append(warnings{}, shared...)
	inputWarnings(in, &ws)
	ws.nonNegative("current_price", product.CurrentPrice)

	sol, err := solve(in)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Result:             sol.result(ws),
		AllocatedFixedCost: roundMoney(allocated),
		BlendedTaxPercent:  roundTo(tax.BlendedPercent(), MoneyPlaces),
		CurrentPrice:       roundMoney(product.CurrentPrice),
		PriceChange:        priceChange(product.CurrentPrice, sol.price),
	}, nil
}

func sharedWarnings(fixedCosts []FixedCostInput, activeProductCount int, tax TaxInput) warnings {
	var ws warnings
	fixedCostWarnings(fixedCosts, activeProductCount, &ws)
	tax.warnings(&ws)
	return ws
}

func priceChange(current, suggested float64) PriceChange {
	change := PriceChange{Amount: roundMoney(suggested - current), Percent: decimal.Zero}
	if current > 0 {
		change.Percent = roundMargin((suggested - current) / current * 100)
	}
	return change
}

// CatalogItem is one product of a catalog-wide computation
type CatalogItem struct {
	ID      uuid.UUID
	Product ProductInput
	// DesiredMarginPercent overrides the batch margin when set
	DesiredMarginPercent *float64
}

// CatalogQuote is the outcome for one CatalogItem. Err holds per-item
// failures such as *UnsolvableMarginError; the rest of the batch is unaffected.
type CatalogQuote struct {
	ID    uuid.UUID
	Quote Quote
	Err   error
}

// ComputeCatalog prices every item concurrently. Allocation and blended tax
// are computed once for the batch. Results keep the input order. Only
// context cancellation aborts the batch.
func (e *Engine) ComputeCatalog(
	ctx context.Context,
	items []CatalogItem,
	fixedCosts []FixedCostInput,
	activeProductCount int,
	tax TaxInput,
	desiredMarginPercent float64,
) ([]CatalogQuote, error) {
	results := make([]CatalogQuote, len(items))
	if len(items) == 0 {
		return results, nil
	}

	allocated := e.policy.Allocate(fixedCosts, activeProductCount)
	shared := sharedWarnings(fixedCosts, activeProductCount, tax)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxWorkers)

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			margin := desiredMarginPercent
			if item.DesiredMarginPercent != nil {
				margin = *item.DesiredMarginPercent
			}
			q, err := e.computeWith(item.Product, allocated, tax, margin, shared)
			results[i] = CatalogQuote{ID: item.ID, Quote: q, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
