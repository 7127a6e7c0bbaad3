package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200

	initialPriceReason = "initial price"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	supplierRepo catalog.SupplierRepository
	historyRepo  catalog.PriceHistoryRepository
	tx           shared.Transactor
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	supplierRepo catalog.SupplierRepository,
	historyRepo catalog.PriceHistoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		historyRepo:  historyRepo,
		tx:           noTransaction{},
	}
}

// SetTransactor makes a product write and its price log entries commit
// together.
func (s *ProductService) SetTransactor(tx shared.Transactor) {
	s.tx = tx
}

type noTransaction struct{}

func (noTransaction) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	if err := s.ensureSupplier(ctx, tenantID, req.SupplierID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.CreatedBy != nil {
		product.SetCreatedBy(*req.CreatedBy)
	}

	if req.Description != "" || req.Category != "" {
		if err := product.Update(req.Name, req.Description, req.Category); err != nil {
			return nil, err
		}
	}

	if req.SupplierID != nil {
		product.SetSupplier(req.SupplierID)
	}

	purchaseCost := decimal.Zero
	variableCost := decimal.Zero
	if req.PurchaseCost != nil {
		purchaseCost = *req.PurchaseCost
	}
	if req.VariableCost != nil {
		variableCost = *req.VariableCost
	}
	if err := product.SetCosts(purchaseCost, variableCost); err != nil {
		return nil, err
	}

	if req.SalePrice != nil {
		if err := product.SetSalePrice(*req.SalePrice, initialPriceReason); err != nil {
			return nil, err
		}
	}

	if err := s.saveWithHistory(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a page of products with filtering
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = shared.DefaultPageSize
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]any{},
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.SupplierID != "" {
		domainFilter.Filters["supplier_id"] = filter.SupplierID
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// Update updates a product's descriptive fields, supplier and costs
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(
		valueOr(req.Name, product.Name),
		valueOr(req.Description, product.Description),
		valueOr(req.Category, product.Category),
	); err != nil {
		return nil, err
	}

	switch {
	case req.ClearSupplier:
		product.SetSupplier(nil)
	case req.SupplierID != nil:
		if err := s.ensureSupplier(ctx, tenantID, req.SupplierID); err != nil {
			return nil, err
		}
		product.SetSupplier(req.SupplierID)
	}

	if req.PurchaseCost != nil || req.VariableCost != nil {
		if err := product.SetCosts(
			valueOr(req.PurchaseCost, product.PurchaseCost),
			valueOr(req.VariableCost, product.VariableCost),
		); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// UpdatePrice changes the sale price and appends the change to the price log
func (s *ProductService) UpdatePrice(ctx context.Context, tenantID, productID uuid.UUID, req UpdatePriceRequest) (*ProductResponse, error) {
	if req.SalePrice == nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price is required")
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetSalePrice(*req.SalePrice, req.Reason); err != nil {
		return nil, err
	}

	if err := s.saveWithHistory(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate activates a product so it shares the fixed-cost pool
func (s *ProductService) Activate(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Activate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return err
	}
	return s.productRepo.DeleteForTenant(ctx, tenantID, productID)
}

// CountActive returns the number of active products, the divisor of the
// fixed-cost allocation
func (s *ProductService) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return s.productRepo.CountByStatus(ctx, tenantID, catalog.ProductStatusActive)
}

// PriceHistory returns the newest price changes of a product first.
// limit <= 0 uses the default; larger values are capped.
func (s *ProductService) PriceHistory(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]PriceHistoryResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	entries, err := s.historyRepo.FindByProduct(ctx, tenantID, productID, limit)
	if err != nil {
		return nil, err
	}
	return ToPriceHistoryResponses(entries), nil
}

func (s *ProductService) saveWithHistory(ctx context.Context, product *catalog.Product) error {
	return s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		return s.recordPriceChanges(ctx, product)
	})
}

// recordPriceChanges writes one log entry per pending price change event
// and clears the product's events.
func (s *ProductService) recordPriceChanges(ctx context.Context, product *catalog.Product) error {
	defer product.ClearDomainEvents()

	for _, event := range product.GetDomainEvents() {
		changed, ok := event.(*catalog.ProductPriceChangedEvent)
		if !ok {
			continue
		}
		if err := s.historyRepo.Save(ctx, catalog.NewPriceHistoryFromEvent(changed)); err != nil {
			return fmt.Errorf("record price history: %w", err)
		}
	}
	return nil
}

func (s *ProductService) ensureSupplier(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID) error {
	if supplierID == nil {
		return nil
	}
	if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *supplierID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_SUPPLIER", "Supplier not found")
		}
		return err
	}
	return nil
}
