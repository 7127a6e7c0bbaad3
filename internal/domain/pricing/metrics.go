package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricedProduct is a product with its current sale price and unit costs
type PricedProduct struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	PurchaseCost float64   `json:"purchase_cost"`
	VariableCost float64   `json:"variable_cost"`
}

// UnitProfit is price minus direct costs
func (p PricedProduct) UnitProfit() float64 {
	return p.Price - p.PurchaseCost - p.VariableCost
}

// UnitMargin is UnitProfit as a percentage of price, 0 when price is 0
func (p PricedProduct) UnitMargin() float64 {
	if p.Price == 0 {
		return 0
	}
	return p.UnitProfit() / p.Price * 100
}

// MostProfitable returns the product with the highest unit profit.
// Ties keep the first product encountered. ok is false for an empty slice.
func MostProfitable(products []PricedProduct) (best PricedProduct, ok bool) {
	for i, p := range products {
		if i == 0 || p.UnitProfit() > best.UnitProfit() {
			best = p
		}
	}
	return best, len(products) > 0
}

// LowestMargin returns the product with the lowest unit margin.
// Ties keep the first product encountered. ok is false for an empty slice.
func LowestMargin(products []PricedProduct) (worst PricedProduct, ok bool) {
	for i, p := range products {
		if i == 0 || p.UnitMargin() < worst.UnitMargin() {
			worst = p
		}
	}
	return worst, len(products) > 0
}

// SalesInput is one product's sales in one period
type SalesInput struct {
	Period    string
	Quantity  float64
	UnitPrice float64
	UnitCost  float64
}

// SeriesPoint is revenue and profit for one period, unrounded. Totals and
// KPIs are computed from it; RoundSeries produces the output form.
type SeriesPoint struct {
	Period  string
	Revenue float64
	Profit  float64
}

// RoundedPoint is a SeriesPoint with money rounded to MoneyPlaces
type RoundedPoint struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// RoundSeries rounds every point for output
func RoundSeries(series []SeriesPoint) []RoundedPoint {
	rounded := make([]RoundedPoint, len(series))
	for i, p := range series {
		rounded[i] = RoundedPoint{
			Period:  p.Period,
			Revenue: roundMoney(p.Revenue),
			Profit:  roundMoney(p.Profit),
		}
	}
	return rounded
}

// BuildSeries groups sales by period, ordered by period ascending.
// Periods are expected as YYYY-MM so lexical order is chronological.
func BuildSeries(sales []SalesInput) []SeriesPoint {
	byPeriod := make(map[string]*SeriesPoint)
	for _, s := range sales {
		point, exists := byPeriod[s.Period]
		if !exists {
			point = &SeriesPoint{Period: s.Period}
			byPeriod[s.Period] = point
		}
		point.Revenue += s.Quantity * s.UnitPrice
		point.Profit += s.Quantity * (s.UnitPrice - s.UnitCost)
	}

	series := make([]SeriesPoint, 0, len(byPeriod))
	for _, point := range byPeriod {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Period < series[j].Period
	})
	return series
}

// Totals sums revenue and profit across a series
func Totals(series []SeriesPoint) (revenue, profit float64) {
	for _, p := range series {
		revenue += p.Revenue
		profit += p.Profit
	}
	return revenue, profit
}

// AverageMargin is the revenue-weighted margin: total profit over total
// revenue. It is not the mean of per-product margins. Zero revenue gives 0.
func AverageMargin(totalProfit, totalRevenue float64) float64 {
	if totalRevenue == 0 || !isFinite(totalRevenue) || !isFinite(totalProfit) {
		return 0
	}
	return totalProfit / totalRevenue * 100
}

// ProductHighlight is a product reference with its unit figures
type ProductHighlight struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	UnitProfit decimal.Decimal `json:"unit_profit"`
	UnitMargin decimal.Decimal `json:"unit_margin"`
}

// DashboardKPIs are the headline figures of the dashboard.
// Empty is set when there were neither products nor sales: every figure is
// then zero and the highlights are nil.
type DashboardKPIs struct {
	TotalRevenue   decimal.Decimal   `json:"total_revenue"`
	TotalProfit    decimal.Decimal   `json:"total_profit"`
	AverageMargin  decimal.Decimal   `json:"average_margin"`
	MostProfitable *ProductHighlight `json:"most_profitable,omitempty"`
	LowestMargin   *ProductHighlight `json:"lowest_margin,omitempty"`
	ProductCount   int               `json:"product_count"`
	Empty          bool              `json:"empty"`
}

// KPIs computes dashboard figures from the active products and a
// revenue/profit series.
func KPIs(products []PricedProduct, series []SeriesPoint) DashboardKPIs {
	revenue, profit := Totals(series)

	kpis := DashboardKPIs{
		TotalRevenue:  roundMoney(revenue),
		TotalProfit:   roundMoney(profit),
		AverageMargin: roundMargin(AverageMargin(profit, revenue)),
		ProductCount:  len(products),
		Empty:         len(products) == 0 && len(series) == 0,
	}

	if best, ok := MostProfitable(products); ok {
		kpis.MostProfitable = highlight(best)
	}
	if worst, ok := LowestMargin(products); ok {
		kpis.LowestMargin = highlight(worst)
	}
	return kpis
}

func highlight(p PricedProduct) *ProductHighlight {
	return &ProductHighlight{
		ID:         p.ID,
		Name:       p.Name,
		UnitProfit: roundMoney(p.UnitProfit()),
		UnitMargin: roundMargin(p.UnitMargin()),
	}
}
