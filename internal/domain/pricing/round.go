package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundMoney rounds half away from zero to MoneyPlaces
func roundMoney(v float64) decimal.Decimal {
	return roundTo(v, MoneyPlaces)
}

// roundMargin rounds half away from zero to MarginPlaces
func roundMargin(v float64) decimal.Decimal {
	return roundTo(v, MarginPlaces)
}

func roundTo(v float64, places int32) decimal.Decimal {
	if !isFinite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(places)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
