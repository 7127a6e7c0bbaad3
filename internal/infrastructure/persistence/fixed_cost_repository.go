package persistence

import (
	"context"
	"errors"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/finance"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFixedCostRepository implements FixedCostRepository using GORM
type GormFixedCostRepository struct {
	db *gorm.DB
}

// NewGormFixedCostRepository creates a new GormFixedCostRepository
func NewGormFixedCostRepository(db *gorm.DB) *GormFixedCostRepository {
	return &GormFixedCostRepository{db: db}
}

// FindByIDForTenant finds a fixed cost by ID within a tenant
func (r *GormFixedCostRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.FixedCost, error) {
	var cost finance.FixedCost
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&cost).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cost, nil
}

// FindAllForTenant lists fixed costs with pagination
func (r *GormFixedCostRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.FixedCost, error) {
	var costs []finance.FixedCost
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.FixedCost{}).Scopes(tenantScope(tenantID)), filter).
		Scopes(pageScope(filter, FixedCostSortFields, "monthly_value"))

	if err := query.Find(&costs).Error; err != nil {
		return nil, err
	}
	return costs, nil
}

// FindLedger returns every fixed cost of the tenant in creation order
func (r *GormFixedCostRepository) FindLedger(ctx context.Context, tenantID uuid.UUID) ([]finance.FixedCost, error) {
	var costs []finance.FixedCost
	if err := conn(ctx, r.db).
		Scopes(tenantScope(tenantID)).
		Order("created_at ASC").
		Find(&costs).Error; err != nil {
		return nil, err
	}
	return costs, nil
}

// CountForTenant counts fixed costs for a tenant
func (r *GormFixedCostRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&finance.FixedCost{}).Scopes(tenantScope(tenantID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a fixed cost
func (r *GormFixedCostRepository) Save(ctx context.Context, cost *finance.FixedCost) error {
	return conn(ctx, r.db).Save(cost).Error
}

// DeleteForTenant deletes a fixed cost within a tenant
func (r *GormFixedCostRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&finance.FixedCost{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormFixedCostRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(searchScope(filter.Search, "name"))
	if v, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", v)
	}
	return query
}

// GormTaxConfigRepository implements TaxConfigRepository using GORM
type GormTaxConfigRepository struct {
	db *gorm.DB
}

// NewGormTaxConfigRepository creates a new GormTaxConfigRepository
func NewGormTaxConfigRepository(db *gorm.DB) *GormTaxConfigRepository {
	return &GormTaxConfigRepository{db: db}
}

// FindByTenant loads the tenant's configuration with its fees in position order
func (r *GormTaxConfigRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*finance.TaxConfig, error) {
	var cfg finance.TaxConfig
	if err := conn(ctx, r.db).
		Preload("AdditionalFees", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("tenant_id = ?", tenantID).
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// Save upserts the configuration and replaces its fees in one transaction
func (r *GormTaxConfigRepository) Save(ctx context.Context, cfg *finance.TaxConfig) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AdditionalFees").Save(cfg).Error; err != nil {
			return err
		}
		if err := tx.Where("tax_config_id = ?", cfg.ID).Delete(&finance.TaxFee{}).Error; err != nil {
			return err
		}
		if len(cfg.AdditionalFees) == 0 {
			return nil
		}
		for i := range cfg.AdditionalFees {
			cfg.AdditionalFees[i].TaxConfigID = cfg.ID
		}
		return tx.Create(&cfg.AdditionalFees).Error
	})
}

var (
	_ finance.FixedCostRepository = (*GormFixedCostRepository)(nil)
	_ finance.TaxConfigRepository = (*GormTaxConfigRepository)(nil)
)
