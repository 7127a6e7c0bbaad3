package handler

import (
	"errors"
	"net/http"
	"testing"

	catalogapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/dto"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productHandlerFixture struct {
	products *testutil.MockProductRepository
	history  *testutil.MockPriceHistoryRepository
	router   *gin.Engine
	tenantID uuid.UUID
}

func newProductHandlerFixture(t *testing.T) productHandlerFixture {
	t.Helper()
	f := productHandlerFixture{
		products: new(testutil.MockProductRepository),
		history:  new(testutil.MockPriceHistoryRepository),
		tenantID: uuid.New(),
	}
	service := catalogapp.NewProductService(f.products, new(testutil.MockSupplierRepository), f.history)
	h := NewProductHandler(service)

	f.router = testutil.NewAuthedRouter(f.tenantID, uuid.New())
	g := f.router.Group("/catalog/products")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id/price", h.UpdatePrice)
	g.POST("/:id/activate", h.Activate)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/price-history", h.PriceHistory)

	t.Cleanup(func() {
		f.products.AssertExpectations(t)
		f.history.AssertExpectations(t)
	})
	return f
}

func (f productHandlerFixture) newProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(f.tenantID, "SKU-001", "Caneca")
	require.NoError(t, err)
	require.NoError(t, p.SetCosts(decimal.NewFromInt(10), decimal.NewFromInt(2)))
	require.NoError(t, p.SetSalePrice(decimal.NewFromInt(60), ""))
	p.ClearDomainEvents()
	return p
}

func TestProductHandler_Create_Success(t *testing.T) {
	f := newProductHandlerFixture(t)

	f.products.On("ExistsByCode", mock.Anything, f.tenantID, "sku-9").Return(false, nil)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	f.history.On("Save", mock.Anything, mock.AnythingOfType("*catalog.PriceHistory")).Return(nil)

	w := testutil.PerformJSON(t, f.router, http.MethodPost, "/catalog/products", map[string]any{
		"code":          "sku-9",
		"name":          "Vela",
		"purchase_cost": "12.50",
		"variable_cost": "1.50",
		"sale_price":    "40",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product catalogapp.ProductResponse
	resp := testutil.DecodeResponse(t, w, &product)
	assert.True(t, resp.Success)
	assert.Equal(t, "SKU-9", product.Code)
	assert.True(t, product.UnitProfit.Equal(decimal.NewFromInt(26)))
	assert.True(t, product.UnitMargin.Equal(decimal.NewFromInt(65)))
}

func TestProductHandler_Create_DuplicateCode(t *testing.T) {
	f := newProductHandlerFixture(t)
	f.products.On("ExistsByCode", mock.Anything, f.tenantID, "SKU-001").Return(true, nil)

	w := testutil.PerformJSON(t, f.router, http.MethodPost, "/catalog/products", map[string]any{
		"code": "SKU-001",
		"name": "Caneca",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := testutil.DecodeResponse(t, w, nil)
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
}

func TestProductHandler_Create_ValidationError(t *testing.T) {
	f := newProductHandlerFixture(t)

	w := testutil.PerformJSON(t, f.router, http.MethodPost, "/catalog/products", map[string]any{"code": "X"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := testutil.DecodeResponse(t, w, nil)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.NotEmpty(t, resp.Error.Details)
	assert.Equal(t, "name", resp.Error.Details[0].Field)
}

func TestProductHandler_Create_NegativeCost(t *testing.T) {
	f := newProductHandlerFixture(t)
	f.products.On("ExistsByCode", mock.Anything, f.tenantID, "SKU-2").Return(false, nil)

	w := testutil.PerformJSON(t, f.router, http.MethodPost, "/catalog/products", map[string]any{
		"code":          "SKU-2",
		"name":          "Vela",
		"purchase_cost": "-1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := testutil.DecodeResponse(t, w, nil)
	assert.Equal(t, "ERR_INVALID_COST", resp.Error.Code)
}

func TestProductHandler_GetByID(t *testing.T) {
	f := newProductHandlerFixture(t)
	product := f.newProduct(t)
	missing := uuid.New()

	f.products.On("FindByIDForTenant", mock.Anything, f.tenantID, product.ID).Return(product, nil)
	f.products.On("FindByIDForTenant", mock.Anything, f.tenantID, missing).Return(nil, shared.ErrNotFound)

	w := testutil.PerformJSON(t, f.router, http.MethodGet, "/catalog/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got catalogapp.ProductResponse
	testutil.DecodeResponse(t, w, &got)
	assert.Equal(t, product.ID, got.ID)

	w = testutil.PerformJSON(t, f.router, http.MethodGet, "/catalog/products/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.PerformJSON(t, f.router, http.MethodGet, "/catalog/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List_Meta(t *testing.T) {
	f := newProductHandlerFixture(t)
	product := f.newProduct(t)

	f.products.On("FindAllForTenant", mock.Anything, f.tenantID, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*product}, nil)
	f.products.On("CountForTenant", mock.Anything, f.tenantID, mock.AnythingOfType("shared.Filter")).
		Return(int64(41), nil)

	w := testutil.PerformJSON(t, f.router, http.MethodGet, "/catalog/products?status=active&page=2", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := testutil.DecodeResponse(t, w, nil)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestProductHandler_List_InvalidStatus(t *testing.T) {
	f := newProductHandlerFixture(t)

	w := testutil.PerformJSON(t, f.router, http.MethodGet, "/catalog/products?status=archived", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_UpdatePrice_RecordsHistory(t *testing.T) {
	f := newProductHandlerFixture(t)
	product := f.newProduct(t)

	f.products.On("FindByIDForTenant", mock.Anything, f.tenantID, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)
	f.history.On("Save", mock.Anything, mock.MatchedBy(func(e *catalog.PriceHistory) bool {
		return e.OldPrice.Equal(decimal.NewFromInt(60)) && e.NewPrice.Equal(decimal.NewFromInt(66)) && e.Reason == "reajuste"
	})).Return(nil)

	w := testutil.PerformJSON(t, f.router, http.MethodPut, "/catalog/products/"+product.ID.String()+"/price", map[string]any{
		"sale_price": "66",
		"reason":     "reajuste",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got catalogapp.ProductResponse
	testutil.DecodeResponse(t, w, &got)
	assert.True(t, got.SalePrice.Equal(decimal.NewFromInt(66)))
}

func TestProductHandler_UpdatePrice_MissingPrice(t *testing.T) {
	f := newProductHandlerFixture(t)

	w := testutil.PerformJSON(t, f.router, http.MethodPut, "/catalog/products/"+uuid.NewString()+"/price", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Activate_AlreadyActive(t *testing.T) {
	f := newProductHandlerFixture(t)
	product := f.newProduct(t)
	f.products.On("FindByIDForTenant", mock.Anything, f.tenantID, product.ID).Return(product, nil)

	w := testutil.PerformJSON(t, f.router, http.MethodPost, "/catalog/products/"+product.ID.String()+"/activate", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := testutil.DecodeResponse(t, w, nil)
	assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	f := newProductHandlerFixture(t)
	product := f.newProduct(t)
	f.products.On("FindByIDForTenant", mock.Anything, f.tenantID, product.ID).Return(product, nil)
	f.products.On("DeleteForTenant", mock.Anything, f.tenantID, product.ID).Return(nil)

	w := testutil.PerformJSON(t, f.router, http.MethodDelete, "/catalog/products/"+product.ID.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProductHandler_PriceHistory_InvalidLimit(t *testing.T) {
	f := newProductHandlerFixture(t)

	w := testutil.PerformJSON(t, f.router, http.MethodGet, "/catalog/products/"+uuid.NewString()+"/price-history?limit=0", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_RepositoryFailure(t *testing.T) {
	f := newProductHandlerFixture(t)
	id := uuid.New()
	f.products.On("FindByIDForTenant", mock.Anything, f.tenantID, id).Return(nil, errors.New("connection reset"))

	w := testutil.PerformJSON(t, f.router, http.MethodGet, "/catalog/products/"+id.String(), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := testutil.DecodeResponse(t, w, nil)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection reset")
}

func TestProductHandler_MissingTenant(t *testing.T) {
	service := catalogapp.NewProductService(new(testutil.MockProductRepository), new(testutil.MockSupplierRepository), new(testutil.MockPriceHistoryRepository))
	h := NewProductHandler(service)
	router := testutil.NewAuthedRouter(uuid.Nil, uuid.Nil)
	router.GET("/catalog/products", h.List)

	w := testutil.PerformJSON(t, router, http.MethodGet, "/catalog/products", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
