package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func newTestPricingMetrics(t *testing.T) (*telemetry.PricingMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := telemetry.NewPricingMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func TestPricingMetrics_RecordQuote(t *testing.T) {
	m, reader := newTestPricingMetrics(t)
	ctx := context.Background()

	q := pricing.Quote{Result: pricing.Result{Warnings: []pricing.InvalidInputWarning{{Field: "purchase_cost"}}}}
	m.RecordQuote(ctx, telemetry.QuoteKindProduct, q, nil, 3*time.Millisecond)
	m.RecordQuote(ctx, telemetry.QuoteKindAdhoc, pricing.Quote{}, &pricing.UnsolvableMarginError{DesiredMarginPercent: 90, BlendedTaxRate: 0.2}, time.Millisecond)

	metrics := collect(t, reader)
	quotes := metrics["pricing_quotes_total"]
	assert.Equal(t, int64(1), sumFor(t, quotes,
		telemetry.AttrQuoteKind.String(telemetry.QuoteKindProduct), telemetry.AttrOutcome.String(telemetry.OutcomeOK)))
	assert.Equal(t, int64(1), sumFor(t, quotes,
		telemetry.AttrQuoteKind.String(telemetry.QuoteKindAdhoc), telemetry.AttrOutcome.String(telemetry.OutcomeUnsolvable)))
	assert.Equal(t, int64(1), sumFor(t, metrics["pricing_input_warnings_total"],
		telemetry.AttrQuoteKind.String(telemetry.QuoteKindProduct)))

	hist, ok := metrics["pricing_compute_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2)
}

func TestPricingMetrics_RecordCatalog(t *testing.T) {
	m, reader := newTestPricingMetrics(t)

	results := []pricing.CatalogQuote{
		{},
		{},
		{Err: &pricing.UnsolvableMarginError{}},
	}
	m.RecordCatalog(context.Background(), results, 10*time.Millisecond)

	metrics := collect(t, reader)
	kind := telemetry.AttrQuoteKind.String(telemetry.QuoteKindCatalog)
	assert.Equal(t, int64(2), sumFor(t, metrics["pricing_quotes_total"], kind, telemetry.AttrOutcome.String(telemetry.OutcomeOK)))
	assert.Equal(t, int64(1), sumFor(t, metrics["pricing_quotes_total"], kind, telemetry.AttrOutcome.String(telemetry.OutcomeUnsolvable)))

	size, ok := metrics["pricing_catalog_size"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, size.DataPoints, 1)
	assert.Equal(t, 3.0, size.DataPoints[0].Sum)
}

func TestPricingMetrics_NilIsNoop(t *testing.T) {
	var m *telemetry.PricingMetrics
	assert.NotPanics(t, func() {
		m.RecordQuote(context.Background(), telemetry.QuoteKindAdhoc, pricing.Quote{}, nil, time.Millisecond)
		m.RecordCatalog(context.Background(), nil, time.Millisecond)
	})
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, telemetry.OutcomeOK, telemetry.OutcomeFor(nil))
	assert.Equal(t, telemetry.OutcomeUnsolvable, telemetry.OutcomeFor(&pricing.UnsolvableMarginError{}))
	assert.Equal(t, telemetry.OutcomeError, telemetry.OutcomeFor(errors.New("db down")))
}
