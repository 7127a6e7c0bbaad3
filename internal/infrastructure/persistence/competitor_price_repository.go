package persistence

import (
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/market"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompetitorPriceRepository implements CompetitorPriceRepository using GORM
type GormCompetitorPriceRepository struct {
	db *gorm.DB
}

// NewGormCompetitorPriceRepository creates a new GormCompetitorPriceRepository
func NewGormCompetitorPriceRepository(db *gorm.DB) *GormCompetitorPriceRepository {
	return &GormCompetitorPriceRepository{db: db}
}

// Save records an observation
func (r *GormCompetitorPriceRepository) Save(ctx context.Context, price *market.CompetitorPrice) error {
	return conn(ctx, r.db).Save(price).Error
}

// LatestByProduct returns the newest observation of every observed product.
// Observations sharing the newest timestamp resolve to the most recently recorded one.
func (r *GormCompetitorPriceRepository) LatestByProduct(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]market.CompetitorPrice, error) {
	db := conn(ctx, r.db)
	latest := db.Model(&market.CompetitorPrice{}).
		Select("product_id, MAX(observed_at) AS observed_at").
		Where("tenant_id = ?", tenantID).
		Group("product_id")

	var rows []market.CompetitorPrice
	if err := db.Table("competitor_prices AS cp").
		Select("cp.*").
		Joins("JOIN (?) AS latest ON latest.product_id = cp.product_id AND latest.observed_at = cp.observed_at", latest).
		Where("cp.tenant_id = ?", tenantID).
		Order("cp.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]market.CompetitorPrice, len(rows))
	for _, row := range rows {
		if _, seen := result[row.ProductID]; !seen {
			result[row.ProductID] = row
		}
	}
	return result, nil
}

// FindByProduct returns a product's observations, newest first; limit <= 0 returns all
func (r *GormCompetitorPriceRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]market.CompetitorPrice, error) {
	var rows []market.CompetitorPrice
	query := conn(ctx, r.db).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("observed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteForTenant deletes an observation within a tenant
func (r *GormCompetitorPriceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&market.CompetitorPrice{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ market.CompetitorPriceRepository = (*GormCompetitorPriceRepository)(nil)
