package pricing

import (
	"github.com/shopspring/decimal"
)

// CompetitorStatus classifies our price against a competitor's
type CompetitorStatus string

const (
	StatusCompetitive CompetitorStatus = "competitive"
	StatusAttention   CompetitorStatus = "attention"
	StatusAboveMarket CompetitorStatus = "above_market"
)

// CompetitorComparison is the outcome of ClassifyCompetitor.
// Difference is the percent our price sits above (positive) or below
// (negative) the competitor, rounded to one decimal.
type CompetitorComparison struct {
	OurPrice        decimal.Decimal  `json:"our_price"`
	CompetitorPrice *decimal.Decimal `json:"competitor_price,omitempty"`
	Difference      decimal.Decimal  `json:"difference"`
	Status          CompetitorStatus `json:"status"`
}

// ClassifyCompetitor compares our price with an optional competitor price.
// A missing or non-positive competitor price is no signal: competitive with
// zero difference.
func ClassifyCompetitor(ourPrice float64, competitorPrice *float64) CompetitorComparison {
	cmp := CompetitorComparison{
		OurPrice:   roundMoney(ourPrice),
		Difference: decimal.Zero,
		Status:     StatusCompetitive,
	}
	if competitorPrice == nil || *competitorPrice <= 0 || !isFinite(*competitorPrice) || !isFinite(ourPrice) {
		return cmp
	}

	theirs := decimal.NewFromFloat(*competitorPrice)
	diff := decimal.NewFromFloat(ourPrice).Sub(theirs).Div(theirs).Mul(decimal.NewFromInt(100))

	theirsRounded := roundMoney(*competitorPrice)
	cmp.CompetitorPrice = &theirsRounded
	cmp.Difference = diff.Round(MarginPlaces)
	cmp.Status = classify(diff)
	return cmp
}

// ClassifyDifference maps a percentage difference to a status
func ClassifyDifference(difference float64) CompetitorStatus {
	if !isFinite(difference) {
		return StatusCompetitive
	}
	return classify(decimal.NewFromFloat(difference))
}

func classify(diff decimal.Decimal) CompetitorStatus {
	switch {
	case diff.LessThanOrEqual(decimal.NewFromFloat(CompetitiveThreshold)):
		return StatusCompetitive
	case diff.LessThanOrEqual(decimal.NewFromFloat(AttentionThreshold)):
		return StatusAttention
	default:
		return StatusAboveMarket
	}
}
