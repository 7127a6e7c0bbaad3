package report

import (
	"context"
	"testing"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/dashboard"
	pricingapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/finance"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/market"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/sales"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	products    *testutil.MockProductRepository
	costs       *testutil.MockFixedCostRepository
	taxes       *testutil.MockTaxConfigRepository
	competitors *testutil.MockCompetitorPriceRepository
	sales       *testutil.MockMonthlySalesRepository
	service     *ReportService
	tenantID    uuid.UUID
}

func newReportFixture() reportFixture {
	f := reportFixture{
		products:    new(testutil.MockProductRepository),
		costs:       new(testutil.MockFixedCostRepository),
		taxes:       new(testutil.MockTaxConfigRepository),
		competitors: new(testutil.MockCompetitorPriceRepository),
		sales:       new(testutil.MockMonthlySalesRepository),
		tenantID:    uuid.New(),
	}
	engine := pricing.NewEngine(pricing.DefaultAllocationPolicy(), 2)
	calculator := pricingapp.NewCalculatorService(engine, f.products, f.costs, f.taxes, 25)
	f.service = NewReportService(f.products, f.competitors, f.sales, calculator)
	return f
}

// stubSnapshot stores 3000 of monthly fixed costs shared by 10 active products
func (f reportFixture) stubSnapshot(t *testing.T, salesTax, marketplace, card float64) {
	t.Helper()
	rent, err := finance.NewFixedCost(f.tenantID, "Aluguel", finance.FixedCostCategoryRent, decimal.NewFromInt(3000), valueobject.MustNewPercentage(100))
	require.NoError(t, err)
	f.costs.On("FindLedger", mock.Anything, f.tenantID).Return([]finance.FixedCost{*rent}, nil)
	f.products.On("CountByStatus", mock.Anything, f.tenantID, catalog.ProductStatusActive).Return(int64(10), nil)

	tc := finance.NewTaxConfig(f.tenantID)
	tc.SetRates(
		valueobject.MustNewPercentage(salesTax),
		valueobject.MustNewPercentage(marketplace),
		valueobject.MustNewPercentage(card),
	)
	f.taxes.On("FindByTenant", mock.Anything, f.tenantID).Return(tc, nil)
}

func (f reportFixture) newProduct(t *testing.T, code, name string) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(f.tenantID, code, name)
	require.NoError(t, err)
	require.NoError(t, p.SetCosts(decimal.NewFromInt(10), decimal.NewFromInt(2)))
	require.NoError(t, p.SetSalePrice(decimal.NewFromInt(60), ""))
	p.ClearDomainEvents()
	return *p
}

func allProducts(f shared.Filter) bool {
	return f.PageSize == 0 && f.OrderBy == "name"
}

func TestReportService_PricingReport(t *testing.T) {
	f := newReportFixture()
	f.stubSnapshot(t, 10, 0, 5)

	mug := f.newProduct(t, "MUG", "Caneca")
	vase := f.newProduct(t, "VASE", "Vaso")
	require.NoError(t, vase.Deactivate())

	observed, err := market.NewCompetitorPrice(f.tenantID, mug.ID, "Loja X", decimal.NewFromInt(50), "", time.Now())
	require.NoError(t, err)

	f.products.On("FindAllForTenant", mock.Anything, f.tenantID, mock.MatchedBy(allProducts)).
		Return([]catalog.Product{vase, mug}, nil)
	f.competitors.On("LatestByProduct", mock.Anything, f.tenantID).
		Return(map[uuid.UUID]market.CompetitorPrice{mug.ID: *observed}, nil)

	report, err := f.service.PricingReport(context.Background(), f.tenantID, PricingReportRequest{})

	require.NoError(t, err)
	assert.Equal(t, float64(25), report.DesiredMarginPercent)
	assert.Equal(t, 10, report.ActiveProductCount)
	assert.Equal(t, "15", report.BlendedTaxPercent.String())
	assert.Equal(t, PricingReportSummary{Products: 2, Priced: 2, Competitive: 1, AboveMarket: 1}, report.Summary)

	require.Len(t, report.Rows, 2)
	first := report.Rows[0]
	assert.Equal(t, "Caneca", first.Name)
	assert.Equal(t, "48", first.CurrentProfit.String())
	assert.Equal(t, "80", first.CurrentMargin.String())
	require.NotNil(t, first.Suggestion)
	assert.Equal(t, "70", first.Suggestion.SuggestedPrice.String())
	assert.Equal(t, pricing.StatusAboveMarket, first.Competitor.Status)
	assert.Equal(t, "20", first.Competitor.Difference.String())
	assert.Equal(t, "Loja X", first.CompetitorName)

	second := report.Rows[1]
	assert.Equal(t, catalog.ProductStatusInactive, second.Status)
	assert.Equal(t, pricing.StatusCompetitive, second.Competitor.Status)
	assert.Nil(t, second.Competitor.CompetitorPrice)
}

func TestReportService_PricingReport_UnsolvableRows(t *testing.T) {
	f := newReportFixture()
	f.stubSnapshot(t, 50, 30, 10)

	mug := f.newProduct(t, "MUG", "Caneca")
	f.products.On("FindAllForTenant", mock.Anything, f.tenantID, mock.MatchedBy(allProducts)).
		Return([]catalog.Product{mug}, nil)
	f.competitors.On("LatestByProduct", mock.Anything, f.tenantID).
		Return(map[uuid.UUID]market.CompetitorPrice{}, nil)

	margin := 15.0
	report, err := f.service.PricingReport(context.Background(), f.tenantID, PricingReportRequest{DesiredMarginPercent: &margin})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Failed)
	require.Len(t, report.Rows, 1)
	assert.Nil(t, report.Rows[0].Suggestion)
	require.NotNil(t, report.Rows[0].Error)
	assert.Equal(t, "UNSOLVABLE_MARGIN", report.Rows[0].Error.Code)
}

func TestReportService_PricingReport_StatusFilter(t *testing.T) {
	f := newReportFixture()
	f.stubSnapshot(t, 10, 0, 5)

	f.products.On("FindAllForTenant", mock.Anything, f.tenantID, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["status"] == "inactive"
	})).Return([]catalog.Product{}, nil)
	f.competitors.On("LatestByProduct", mock.Anything, f.tenantID).
		Return(map[uuid.UUID]market.CompetitorPrice{}, nil)

	report, err := f.service.PricingReport(context.Background(), f.tenantID, PricingReportRequest{Status: "inactive"})

	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.Equal(t, 0, report.Summary.Products)
}

func TestReportService_PricingReport_InvalidMargin(t *testing.T) {
	f := newReportFixture()
	margin := 120.0

	_, err := f.service.PricingReport(context.Background(), f.tenantID, PricingReportRequest{DesiredMarginPercent: &margin})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MARGIN", domainErr.Code)
	f.products.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Series(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()
	productID := uuid.New()

	record := func(period string, qty int64) sales.MonthlySales {
		s, err := sales.NewMonthlySales(f.tenantID, productID, period, decimal.NewFromInt(qty), decimal.NewFromInt(10), decimal.NewFromInt(6))
		require.NoError(t, err)
		return *s
	}
	f.sales.On("FindInRange", ctx, f.tenantID, "2024-01", "").
		Return([]sales.MonthlySales{record("2024-02", 5), record("2024-01", 10), record("2024-02", 5)}, nil)

	series, err := f.service.Series(ctx, f.tenantID, dashboard.PeriodFilter{From: "2024-01"})

	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	assert.Equal(t, "2024-01", series.Points[0].Period)
	assert.Equal(t, "100", series.Points[0].Revenue.String())
	assert.Equal(t, "2024-02", series.Points[1].Period)
	assert.Equal(t, "40", series.Points[1].Profit.String())
	assert.Equal(t, "200", series.TotalRevenue.String())
	assert.Equal(t, "80", series.TotalProfit.String())
	assert.Equal(t, "40", series.AverageMargin.String())
}

func TestReportService_Series_InvalidRange(t *testing.T) {
	f := newReportFixture()

	_, err := f.service.Series(context.Background(), f.tenantID, dashboard.PeriodFilter{From: "2024-06", To: "2024-01"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD_RANGE", domainErr.Code)
}
