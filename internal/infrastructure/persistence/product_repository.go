package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllForTenant finds all products for a tenant
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(conn(ctx, r.db).Model(&catalog.Product{}).Scopes(tenantScope(tenantID)), filter).
		Scopes(pageScope(filter, ProductSortFields, "name"))

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindActive finds every active product for a tenant, ordered by name
func (r *GormProductRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := conn(ctx, r.db).
		Scopes(tenantScope(tenantID)).
		Where("status = ?", catalog.ProductStatusActive).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return conn(ctx, r.db).Save(product).Error
}

// DeleteForTenant deletes a product within a tenant
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&catalog.Product{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts products for a tenant
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&catalog.Product{}).Scopes(tenantScope(tenantID)), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts products by status for a tenant
func (r *GormProductRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status catalog.ProductStatus) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&catalog.Product{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a product with the given code exists in the tenant
func (r *GormProductRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&catalog.Product{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies search and attribute filters without pagination
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(searchScope(filter.Search, "name", "code", "category"))

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "supplier_id":
			if value == nil {
				query = query.Where("supplier_id IS NULL")
			} else {
				query = query.Where("supplier_id = ?", value)
			}
		}
	}

	return query
}

// GormPriceHistoryRepository stores the sale price log
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GormPriceHistoryRepository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// Save appends an entry
func (r *GormPriceHistoryRepository) Save(ctx context.Context, entry *catalog.PriceHistory) error {
	return conn(ctx, r.db).Create(entry).Error
}

// FindByProduct returns the newest entries first; limit <= 0 returns all
func (r *GormPriceHistoryRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]catalog.PriceHistory, error) {
	var entries []catalog.PriceHistory
	query := conn(ctx, r.db).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("changed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

var (
	_ catalog.ProductRepository      = (*GormProductRepository)(nil)
	_ catalog.PriceHistoryRepository = (*GormPriceHistoryRepository)(nil)
)
