package dashboard

import (
	"context"
	"testing"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/sales"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, tenantID uuid.UUID, code string, cost, price int64) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(tenantID, code, "Produto "+code)
	require.NoError(t, err)
	require.NoError(t, p.SetCosts(decimal.NewFromInt(cost), decimal.Zero))
	require.NoError(t, p.SetSalePrice(decimal.NewFromInt(price), ""))
	return *p
}

func newSales(t *testing.T, tenantID, productID uuid.UUID, period string, qty, price, cost int64) sales.MonthlySales {
	t.Helper()
	s, err := sales.NewMonthlySales(tenantID, productID, period, decimal.NewFromInt(qty), decimal.NewFromInt(price), decimal.NewFromInt(cost))
	require.NoError(t, err)
	return *s
}

func TestDashboardService_KPIs(t *testing.T) {
	products := new(testutil.MockProductRepository)
	salesRepo := new(testutil.MockMonthlySalesRepository)
	service := NewDashboardService(products, salesRepo)
	ctx := context.Background()
	tenantID := uuid.New()

	cheap := newProduct(t, tenantID, "A", 8, 10)   // profit 2, margin 20
	premium := newProduct(t, tenantID, "B", 50, 100) // profit 50, margin 50
	products.On("FindActive", ctx, tenantID).Return([]catalog.Product{cheap, premium}, nil)
	salesRepo.On("FindInRange", ctx, tenantID, "2024-01", "2024-02").Return([]sales.MonthlySales{
		newSales(t, tenantID, cheap.ID, "2024-01", 100, 10, 8),
		newSales(t, tenantID, premium.ID, "2024-02", 10, 100, 50),
	}, nil)

	result, err := service.KPIs(ctx, tenantID, PeriodFilter{From: "2024-01", To: "2024-02"})

	require.NoError(t, err)
	assert.False(t, result.Empty)
	assert.Equal(t, 2, result.ProductCount)
	assert.True(t, result.TotalRevenue.Equal(decimal.NewFromInt(2000)))
	assert.True(t, result.TotalProfit.Equal(decimal.NewFromInt(700)))
	assert.True(t, result.AverageMargin.Equal(decimal.NewFromInt(35)))
	require.NotNil(t, result.MostProfitable)
	assert.Equal(t, premium.ID, result.MostProfitable.ID)
	require.NotNil(t, result.LowestMargin)
	assert.Equal(t, cheap.ID, result.LowestMargin.ID)
}

func TestDashboardService_KPIs_Empty(t *testing.T) {
	products := new(testutil.MockProductRepository)
	salesRepo := new(testutil.MockMonthlySalesRepository)
	service := NewDashboardService(products, salesRepo)
	ctx := context.Background()
	tenantID := uuid.New()

	products.On("FindActive", ctx, tenantID).Return([]catalog.Product{}, nil)
	salesRepo.On("FindInRange", ctx, tenantID, "", "").Return([]sales.MonthlySales{}, nil)

	result, err := service.KPIs(ctx, tenantID, PeriodFilter{})

	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.True(t, result.AverageMargin.IsZero())
	assert.Nil(t, result.MostProfitable)
	assert.Nil(t, result.LowestMargin)
}

func TestDashboardService_KPIs_InvalidPeriods(t *testing.T) {
	tests := []struct {
		name   string
		filter PeriodFilter
		code   string
	}{
		{"bad from", PeriodFilter{From: "2024-13"}, "INVALID_PERIOD"},
		{"bad to", PeriodFilter{To: "january"}, "INVALID_PERIOD"},
		{"reversed", PeriodFilter{From: "2024-05", To: "2024-01"}, "INVALID_PERIOD_RANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(testutil.MockProductRepository)
			service := NewDashboardService(products, new(testutil.MockMonthlySalesRepository))

			_, err := service.KPIs(context.Background(), uuid.New(), tt.filter)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			products.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything)
		})
	}
}

func TestDashboardService_RecordSales_DefaultsToProductFigures(t *testing.T) {
	products := new(testutil.MockProductRepository)
	salesRepo := new(testutil.MockMonthlySalesRepository)
	service := NewDashboardService(products, salesRepo)
	ctx := context.Background()
	tenantID := uuid.New()
	product := newProduct(t, tenantID, "A", 8, 10)

	products.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(&product, nil)
	salesRepo.On("Upsert", ctx, mock.MatchedBy(func(r *sales.MonthlySales) bool {
		return r.Period == "2024-03" && r.UnitPrice.Equal(decimal.NewFromInt(10)) && r.UnitCost.Equal(decimal.NewFromInt(8))
	})).Return(nil)

	result, err := service.RecordSales(ctx, tenantID, RecordSalesRequest{
		ProductID: product.ID,
		Period:    "2024-03",
		Quantity:  decimal.NewFromInt(12),
	})

	require.NoError(t, err)
	assert.True(t, result.Revenue.Equal(decimal.NewFromInt(120)))
	salesRepo.AssertExpectations(t)
}

func TestDashboardService_RecordSales_ReturnsStoredID(t *testing.T) {
	products := new(testutil.MockProductRepository)
	salesRepo := new(testutil.MockMonthlySalesRepository)
	service := NewDashboardService(products, salesRepo)
	ctx := context.Background()
	tenantID := uuid.New()
	product := newProduct(t, tenantID, "A", 8, 10)
	storedID := uuid.New()

	products.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(&product, nil)
	salesRepo.On("Upsert", ctx, mock.AnythingOfType("*sales.MonthlySales")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*sales.MonthlySales).ID = storedID
		}).
		Return(nil)

	result, err := service.RecordSales(ctx, tenantID, RecordSalesRequest{
		ProductID: product.ID,
		Period:    "2024-03",
		Quantity:  decimal.NewFromInt(5),
	})

	require.NoError(t, err)
	assert.Equal(t, storedID, result.ID)
}

func TestDashboardService_RecordSales_InvalidPeriod(t *testing.T) {
	products := new(testutil.MockProductRepository)
	salesRepo := new(testutil.MockMonthlySalesRepository)
	service := NewDashboardService(products, salesRepo)
	ctx := context.Background()
	tenantID := uuid.New()
	product := newProduct(t, tenantID, "A", 8, 10)

	products.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(&product, nil)

	_, err := service.RecordSales(ctx, tenantID, RecordSalesRequest{ProductID: product.ID, Period: "03/2024"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
	salesRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
