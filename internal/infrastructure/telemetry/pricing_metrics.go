package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"go.opentelemetry.io/otel/metric"
)

// Quote kinds
const (
	QuoteKindProduct = "product"
	QuoteKindAdhoc   = "adhoc"
	QuoteKindCatalog = "catalog"
)

// Quote outcomes
const (
	OutcomeOK         = "ok"
	OutcomeUnsolvable = "unsolvable"
	OutcomeError      = "error"
)

// PricingMetrics records pricing engine activity.
// A nil *PricingMetrics records nothing.
type PricingMetrics struct {
	quotes          *Counter
	warnings        *Counter
	computeDuration *Histogram
	catalogSize     *Histogram
}

// NewPricingMetrics registers the pricing instruments on meter
func NewPricingMetrics(meter metric.Meter) (*PricingMetrics, error) {
	quotes, err := NewCounter(meter, "pricing_quotes_total", "Number of price quotes computed", "{quote}")
	if err != nil {
		return nil, err
	}
	warnings, err := NewCounter(meter, "pricing_input_warnings_total", "Number of suspect inputs flagged on quotes", "{warning}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "pricing_compute_duration_seconds",
		Description: "Time spent loading inputs and solving a quote",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	catalogSize, err := NewHistogram(meter, HistogramOpts{
		Name:        "pricing_catalog_size",
		Description: "Number of products priced by a catalog quote",
		Unit:        "{product}",
		Boundaries:  []float64{1, 10, 50, 100, 500, 1000, 5000},
	})
	if err != nil {
		return nil, err
	}

	return &PricingMetrics{
		quotes:          quotes,
		warnings:        warnings,
		computeDuration: duration,
		catalogSize:     catalogSize,
	}, nil
}

// RecordQuote counts one quote of the given kind and records its duration
func (m *PricingMetrics) RecordQuote(ctx context.Context, kind string, q pricing.Quote, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeFor(err)
	m.quotes.Inc(ctx, AttrQuoteKind.String(kind), AttrOutcome.String(outcome))
	if n := len(q.Warnings); n > 0 {
		m.warnings.Add(ctx, int64(n), AttrQuoteKind.String(kind))
	}
	m.computeDuration.RecordDuration(ctx, elapsed, AttrQuoteKind.String(kind), AttrOutcome.String(outcome))
}

// RecordCatalog records a catalog run and counts every item by outcome
func (m *PricingMetrics) RecordCatalog(ctx context.Context, results []pricing.CatalogQuote, elapsed time.Duration) {
	if m == nil {
		return
	}
	kind := AttrQuoteKind.String(QuoteKindCatalog)
	counts := make(map[string]int64, 3)
	var warnings int64
	for _, r := range results {
		counts[OutcomeFor(r.Err)]++
		warnings += int64(len(r.Quote.Warnings))
	}
	for outcome, n := range counts {
		m.quotes.Add(ctx, n, kind, AttrOutcome.String(outcome))
	}
	if warnings > 0 {
		m.warnings.Add(ctx, warnings, kind)
	}
	m.catalogSize.Record(ctx, float64(len(results)))
	m.computeDuration.RecordDuration(ctx, elapsed, kind, AttrOutcome.String(OutcomeOK))
}

// OutcomeFor classifies a pricing error for metric attributes
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, pricing.ErrUnsolvableMargin):
		return OutcomeUnsolvable
	default:
		return OutcomeError
	}
}
