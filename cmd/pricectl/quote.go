package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/spf13/cobra"
)

type quoteFlags struct {
	purchaseCost   float64
	variableCost   float64
	currentPrice   float64
	fixedCosts     []string
	activeProducts int
	salesTax       float64
	marketplaceFee float64
	cardFee        float64
	fees           []string
	margin         float64
	dampening      float64
	asJSON         bool
}

func quoteCmd() *cobra.Command {
	f := &quoteFlags{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one product offline",
		Long: `Compute the suggested price for a product from its unit costs, the monthly
fixed-cost pool and the tax configuration, without touching the database.

Fixed costs are given as value[:allocation_percent], for example
--fixed-cost 3000:100 --fixed-cost 500. Extra fees are name=percentage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd.OutOrStdout(), f)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.purchaseCost, "purchase-cost", 0, "unit purchase cost")
	flags.Float64Var(&f.variableCost, "variable-cost", 0, "unit variable cost")
	flags.Float64Var(&f.currentPrice, "current-price", 0, "current selling price, for the price change")
	flags.StringArrayVar(&f.fixedCosts, "fixed-cost", nil, "monthly fixed cost as value[:allocation_percent] (repeatable)")
	flags.IntVar(&f.activeProducts, "active-products", 1, "number of active products sharing the fixed costs")
	flags.Float64Var(&f.salesTax, "sales-tax", 0, "sales tax percentage")
	flags.Float64Var(&f.marketplaceFee, "marketplace-fee", 0, "marketplace fee percentage")
	flags.Float64Var(&f.cardFee, "card-fee", 0, "card fee percentage")
	flags.StringArrayVar(&f.fees, "fee", nil, "additional fee as name=percentage (repeatable)")
	flags.Float64Var(&f.margin, "margin", 30, "desired margin percentage")
	flags.Float64Var(&f.dampening, "dampening", pricing.DefaultDampeningFactor, "share of the average fixed cost charged to one product")
	flags.BoolVar(&f.asJSON, "json", false, "print the quote as JSON")

	return cmd
}

func runQuote(out io.Writer, f *quoteFlags) error {
	fixedCosts, err := parseFixedCosts(f.fixedCosts)
	if err != nil {
		return err
	}
	fees, err := parseFees(f.fees)
	if err != nil {
		return err
	}

	engine := pricing.NewEngine(pricing.AllocationPolicy{DampeningFactor: f.dampening}, 1)
	quote, err := engine.Compute(
		pricing.ProductInput{
			PurchaseCost: f.purchaseCost,
			VariableCost: f.variableCost,
			CurrentPrice: f.currentPrice,
		},
		fixedCosts,
		f.activeProducts,
		pricing.TaxInput{
			SalesTax:       f.salesTax,
			MarketplaceFee: f.marketplaceFee,
			CardFee:        f.cardFee,
			AdditionalFees: fees,
		},
		f.margin,
	)
	if err != nil {
		return err
	}

	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(quote)
	}

	fmt.Fprintf(out, "Allocated fixed cost: %s\n", quote.AllocatedFixedCost.StringFixed(2))
	fmt.Fprintf(out, "Total cost:           %s\n", quote.TotalCost.StringFixed(2))
	fmt.Fprintf(out, "Blended tax:          %s%%\n", quote.BlendedTaxPercent.String())
	fmt.Fprintf(out, "Suggested price:      %s\n", quote.SuggestedPrice.StringFixed(2))
	fmt.Fprintf(out, "Tax amount:           %s\n", quote.TaxAmount.StringFixed(2))
	fmt.Fprintf(out, "Profit per unit:      %s\n", quote.ProfitPerUnit.StringFixed(2))
	fmt.Fprintf(out, "Real margin:          %s%%\n", quote.RealMargin.StringFixed(1))
	if f.currentPrice > 0 {
		fmt.Fprintf(out, "Change vs current:    %s (%s%%)\n",
			quote.PriceChange.Amount.StringFixed(2), quote.PriceChange.Percent.StringFixed(1))
	}
	for _, w := range quote.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func parseFixedCosts(values []string) ([]pricing.FixedCostInput, error) {
	costs := make([]pricing.FixedCostInput, 0, len(values))
	for _, raw := range values {
		valuePart, percentPart, hasPercent := strings.Cut(raw, ":")
		value, err := strconv.ParseFloat(strings.TrimSpace(valuePart), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid fixed cost %q: %w", raw, err)
		}
		percent := 100.0
		if hasPercent {
			percent, err = strconv.ParseFloat(strings.TrimSpace(percentPart), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid allocation percent in %q: %w", raw, err)
			}
		}
		costs = append(costs, pricing.FixedCostInput{MonthlyValue: value, AllocationPercent: percent})
	}
	return costs, nil
}

func parseFees(values []string) ([]pricing.FeeInput, error) {
	fees := make([]pricing.FeeInput, 0, len(values))
	for _, raw := range values {
		name, percentPart, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid fee %q: expected name=percentage", raw)
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(percentPart), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid fee percentage in %q: %w", raw, err)
		}
		fees = append(fees, pricing.FeeInput{Name: strings.TrimSpace(name), Percentage: percent})
	}
	return fees, nil
}
