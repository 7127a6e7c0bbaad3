package pricing

import (
	"github.com/shopspring/decimal"
)

// SolveInput holds the already aggregated inputs of the margin equation.
// BlendedTaxRate is a fraction; DesiredMarginPercent is 0-100.
type SolveInput struct {
	PurchaseCost         float64
	VariableCost         float64
	AllocatedFixedCost   float64
	BlendedTaxRate       float64
	DesiredMarginPercent float64
}

// Result is the decomposition of a solved price.
// Money fields carry 2 decimals, RealMargin carries 1.
type Result struct {
	TotalCost      decimal.Decimal       `json:"total_cost"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	SuggestedPrice decimal.Decimal       `json:"suggested_price"`
	ProfitPerUnit  decimal.Decimal       `json:"profit_per_unit"`
	RealMargin     decimal.Decimal       `json:"real_margin"`
	Warnings       []InvalidInputWarning `json:"warnings,omitempty"`
}

// Suspect reports whether the result was computed from flagged inputs
func (r Result) Suspect() bool {
	return len(r.Warnings) > 0
}

// solution keeps the unrounded values so callers can derive further
// figures before the final rounding.
type solution struct {
	totalCost float64
	tax       float64
	price     float64
	profit    float64
	margin    float64
}

// Solve finds the price P where cost, tax on P and the desired margin of P
// add up to P:
//
//	P = totalCost / (1 - m - t)
//
// When m + t >= 1 there is no finite positive solution and an
// *UnsolvableMarginError is returned. Float noise on the boundary is absorbed
// by SolveTolerance.
func Solve(in SolveInput) (Result, error) {
	var ws warnings
	inputWarnings(in, &ws)

	sol, err := solve(in)
	if err != nil {
		return Result{}, err
	}
	return sol.result(ws), nil
}

func solve(in SolveInput) (solution, error) {
	for _, v := range []float64{in.PurchaseCost, in.VariableCost, in.AllocatedFixedCost, in.BlendedTaxRate, in.DesiredMarginPercent} {
		if !isFinite(v) {
			return solution{}, ErrNonFiniteInput
		}
	}

	m := in.DesiredMarginPercent / 100
	t := in.BlendedTaxRate
	denominator := 1 - m - t
	if denominator <= SolveTolerance {
		return solution{}, &UnsolvableMarginError{
			DesiredMarginPercent: in.DesiredMarginPercent,
			BlendedTaxRate:       in.BlendedTaxRate,
		}
	}

	totalCost := in.PurchaseCost + in.VariableCost + in.AllocatedFixedCost
	price := totalCost / denominator
	tax := price * t
	profit := price - totalCost - tax

	var margin float64
	if price != 0 {
		margin = profit / price * 100
	}

	return solution{
		totalCost: totalCost,
		tax:       tax,
		price:     price,
		profit:    profit,
		margin:    margin,
	}, nil
}

func (s solution) result(ws warnings) Result {
	return Result{
		TotalCost:      roundMoney(s.totalCost),
		TaxAmount:      roundMoney(s.tax),
		SuggestedPrice: roundMoney(s.price),
		ProfitPerUnit:  roundMoney(s.profit),
		RealMargin:     roundMargin(s.margin),
		Warnings:       ws,
	}
}

func inputWarnings(in SolveInput, ws *warnings) {
	ws.nonNegative("purchase_cost", in.PurchaseCost)
	ws.nonNegative("variable_cost", in.VariableCost)
	ws.nonNegative("allocated_fixed_cost", in.AllocatedFixedCost)
	ws.nonNegative("blended_tax_rate", in.BlendedTaxRate)
	ws.percentRange("desired_margin_percent", in.DesiredMarginPercent)
}
