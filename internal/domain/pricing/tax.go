package pricing

import "fmt"

// FeeInput is a named extra percentage fee
type FeeInput struct {
	Name       string
	Percentage float64
}

// TaxInput holds every percentage charged on the final sale price.
// All values are expressed as 0-100.
type TaxInput struct {
	SalesTax       float64
	MarketplaceFee float64
	CardFee        float64
	AdditionalFees []FeeInput
}

// BlendedPercent adds every configured percentage. No caps, no compounding.
func (t TaxInput) BlendedPercent() float64 {
	total := t.SalesTax + t.MarketplaceFee + t.CardFee
	for _, f := range t.AdditionalFees {
		total += f.Percentage
	}
	return total
}

// BlendedRate returns BlendedPercent as a fraction of the price
func (t TaxInput) BlendedRate() float64 {
	return t.BlendedPercent() / 100
}

func (t TaxInput) warnings(ws *warnings) {
	ws.percentRange("tax.sales_tax", t.SalesTax)
	ws.percentRange("tax.marketplace_fee", t.MarketplaceFee)
	ws.percentRange("tax.card_fee", t.CardFee)
	for i, f := range t.AdditionalFees {
		ws.percentRange(fmt.Sprintf("tax.additional_fees[%d].percentage", i), f.Percentage)
	}
}
