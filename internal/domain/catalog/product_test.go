package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct(uuid.New(), "SKU-001", "Camiseta")
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(tenantID, "sku-001", "Camiseta")
		require.NoError(t, err)

		assert.Equal(t, tenantID, product.TenantID)
		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Camiseta", product.Name)
		assert.True(t, product.PurchaseCost.IsZero())
		assert.True(t, product.VariableCost.IsZero())
		assert.True(t, product.SalePrice.IsZero())
		assert.True(t, product.IsActive())
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct(tenantID, "SKU-002", "Caneca")
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, tenantID, event.TenantID())
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct(tenantID, "", "Caneca")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		_, err := NewProduct(tenantID, "SKU 01", "Caneca")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "letters, numbers")
	})

	t.Run("fails with blank name", func(t *testing.T) {
		_, err := NewProduct(tenantID, "SKU-003", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestProduct_SetCosts(t *testing.T) {
	product := newTestProduct(t)

	require.NoError(t, product.SetCosts(decimal.NewFromInt(1200), decimal.NewFromInt(45)))
	assert.True(t, product.PurchaseCost.Equal(decimal.NewFromInt(1200)))
	assert.True(t, product.VariableCost.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, 2, product.GetVersion())

	err := product.SetCosts(decimal.NewFromInt(-1), decimal.Zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Purchase cost cannot be negative")

	err = product.SetCosts(decimal.Zero, decimal.NewFromInt(-1))
	assert.Contains(t, err.Error(), "Variable cost cannot be negative")
}

func TestProduct_SetSalePrice(t *testing.T) {
	t.Run("records price change event", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetSalePrice(decimal.NewFromFloat(99.9), "initial"))
		require.NoError(t, product.SetSalePrice(decimal.NewFromFloat(120), "calculator"))

		events := product.GetDomainEvents()
		require.Len(t, events, 2)
		last, ok := events[1].(*ProductPriceChangedEvent)
		require.True(t, ok)
		assert.True(t, last.OldPrice.Equal(decimal.NewFromFloat(99.9)))
		assert.True(t, last.NewPrice.Equal(decimal.NewFromInt(120)))
		assert.Equal(t, "calculator", last.Reason)
	})

	t.Run("same price is a no-op", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetSalePrice(decimal.Zero, ""))
		assert.Empty(t, product.GetDomainEvents())
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		product := newTestProduct(t)
		err := product.SetSalePrice(decimal.NewFromInt(-5), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestProduct_StatusTransitions(t *testing.T) {
	product := newTestProduct(t)

	err := product.Activate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already active")

	require.NoError(t, product.Deactivate())
	assert.False(t, product.IsActive())
	assert.Error(t, product.Deactivate())

	require.NoError(t, product.Activate())
	assert.True(t, product.IsActive())

	events := product.GetDomainEvents()
	require.Len(t, events, 2)
	changed := events[0].(*ProductStatusChangedEvent)
	assert.Equal(t, ProductStatusActive, changed.OldStatus)
	assert.Equal(t, ProductStatusInactive, changed.NewStatus)
}

func TestProduct_PricingViews(t *testing.T) {
	product := newTestProduct(t)
	require.NoError(t, product.SetCosts(decimal.NewFromInt(1200), decimal.NewFromInt(45)))
	require.NoError(t, product.SetSalePrice(decimal.NewFromFloat(4574.28), ""))

	in := product.PricingInput()
	assert.Equal(t, 1200.0, in.PurchaseCost)
	assert.Equal(t, 45.0, in.VariableCost)
	assert.Equal(t, 4574.28, in.CurrentPrice)

	priced := product.Priced()
	assert.Equal(t, product.ID, priced.ID)
	assert.InDelta(t, 3329.28, priced.UnitProfit(), 1e-9)
}

func TestPriceHistory(t *testing.T) {
	product := newTestProduct(t)
	require.NoError(t, product.SetSalePrice(decimal.NewFromInt(100), ""))
	require.NoError(t, product.SetSalePrice(decimal.NewFromInt(125), "reprice"))

	event := product.GetDomainEvents()[1].(*ProductPriceChangedEvent)
	entry := NewPriceHistoryFromEvent(event)

	assert.Equal(t, product.ID, entry.ProductID)
	assert.Equal(t, product.TenantID, entry.TenantID)
	assert.Equal(t, "reprice", entry.Reason)
	assert.True(t, entry.ChangePercent().Equal(decimal.NewFromInt(25)))

	first := NewPriceHistoryFromEvent(product.GetDomainEvents()[0].(*ProductPriceChangedEvent))
	assert.True(t, first.ChangePercent().IsZero())
}
