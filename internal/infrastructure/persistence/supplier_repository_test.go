package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSupplierRepository_CountForTenant(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormSupplierRepository(db)

	tenantID := uuid.New()
	filter := shared.DefaultFilter()
	filter.Filters["is_active"] = true

	mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE tenant_id = \$1 AND is_active = \$2`).
		WithArgs(tenantID, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountForTenant(context.Background(), tenantID, filter)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSupplierRepository_SQLite(t *testing.T) {
	db := setupSQLiteDB(t)
	suppliers := NewGormSupplierRepository(db)
	products := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	supplier, err := catalog.NewSupplier(tenantID, "Clay Works")
	require.NoError(t, err)
	require.NoError(t, supplier.SetContact("Ana", "+55 11 99999-0000", "ana@clay.example"))
	require.NoError(t, suppliers.Save(ctx, supplier))

	product, err := catalog.NewProduct(tenantID, "MUG-01", "Mug")
	require.NoError(t, err)
	product.SetSupplier(&supplier.ID)
	require.NoError(t, products.Save(ctx, product))

	filter := shared.DefaultFilter()
	filter.Search = "clay"
	list, err := suppliers.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana@clay.example", list[0].Email)

	require.NoError(t, suppliers.DeleteForTenant(ctx, tenantID, supplier.ID))

	reloaded, err := products.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.SupplierID)

	assert.ErrorIs(t, suppliers.DeleteForTenant(ctx, tenantID, supplier.ID), shared.ErrNotFound)
}
