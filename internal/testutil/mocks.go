// Package testutil provides test doubles and helpers shared by the
// application and HTTP test suites.
package testutil

import (
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/finance"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/market"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/sales"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status catalog.ProductStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

// MockPriceHistoryRepository is a mock implementation of catalog.PriceHistoryRepository
type MockPriceHistoryRepository struct {
	mock.Mock
}

func (m *MockPriceHistoryRepository) Save(ctx context.Context, entry *catalog.PriceHistory) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockPriceHistoryRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]catalog.PriceHistory, error) {
	args := m.Called(ctx, tenantID, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.PriceHistory), args.Error(1)
}

// MockSupplierRepository is a mock implementation of catalog.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Supplier, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *catalog.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockFixedCostRepository is a mock implementation of finance.FixedCostRepository
type MockFixedCostRepository struct {
	mock.Mock
}

func (m *MockFixedCostRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.FixedCost, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FixedCost), args.Error(1)
}

func (m *MockFixedCostRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.FixedCost, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FixedCost), args.Error(1)
}

func (m *MockFixedCostRepository) FindLedger(ctx context.Context, tenantID uuid.UUID) ([]finance.FixedCost, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FixedCost), args.Error(1)
}

func (m *MockFixedCostRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFixedCostRepository) Save(ctx context.Context, cost *finance.FixedCost) error {
	return m.Called(ctx, cost).Error(0)
}

func (m *MockFixedCostRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockTaxConfigRepository is a mock implementation of finance.TaxConfigRepository
type MockTaxConfigRepository struct {
	mock.Mock
}

func (m *MockTaxConfigRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*finance.TaxConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.TaxConfig), args.Error(1)
}

func (m *MockTaxConfigRepository) Save(ctx context.Context, config *finance.TaxConfig) error {
	return m.Called(ctx, config).Error(0)
}

// MockCompetitorPriceRepository is a mock implementation of market.CompetitorPriceRepository
type MockCompetitorPriceRepository struct {
	mock.Mock
}

func (m *MockCompetitorPriceRepository) Save(ctx context.Context, price *market.CompetitorPrice) error {
	return m.Called(ctx, price).Error(0)
}

func (m *MockCompetitorPriceRepository) LatestByProduct(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]market.CompetitorPrice, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]market.CompetitorPrice), args.Error(1)
}

func (m *MockCompetitorPriceRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]market.CompetitorPrice, error) {
	args := m.Called(ctx, tenantID, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.CompetitorPrice), args.Error(1)
}

func (m *MockCompetitorPriceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockMonthlySalesRepository is a mock implementation of sales.MonthlySalesRepository
type MockMonthlySalesRepository struct {
	mock.Mock
}

func (m *MockMonthlySalesRepository) Upsert(ctx context.Context, record *sales.MonthlySales) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMonthlySalesRepository) FindInRange(ctx context.Context, tenantID uuid.UUID, from, to string) ([]sales.MonthlySales, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.MonthlySales), args.Error(1)
}

var (
	_ catalog.ProductRepository        = (*MockProductRepository)(nil)
	_ catalog.PriceHistoryRepository   = (*MockPriceHistoryRepository)(nil)
	_ catalog.SupplierRepository       = (*MockSupplierRepository)(nil)
	_ finance.FixedCostRepository      = (*MockFixedCostRepository)(nil)
	_ finance.TaxConfigRepository      = (*MockTaxConfigRepository)(nil)
	_ market.CompetitorPriceRepository = (*MockCompetitorPriceRepository)(nil)
	_ sales.MonthlySalesRepository     = (*MockMonthlySalesRepository)(nil)
)
