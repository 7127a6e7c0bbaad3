package persistence

import (
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/sales"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMonthlySalesRepository implements MonthlySalesRepository using GORM
type GormMonthlySalesRepository struct {
	db *gorm.DB
}

// NewGormMonthlySalesRepository creates a new GormMonthlySalesRepository
func NewGormMonthlySalesRepository(db *gorm.DB) *GormMonthlySalesRepository {
	return &GormMonthlySalesRepository{db: db}
}

// Upsert inserts the record or overwrites the figures of the existing record
// for the same product and period, then loads the stored row into record.
func (r *GormMonthlySalesRepository) Upsert(ctx context.Context, record *sales.MonthlySales) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit_price", "unit_cost", "updated_at"}),
		}).Create(record).Error; err != nil {
			return err
		}

		var stored sales.MonthlySales
		if err := tx.Where("product_id = ? AND period = ?", record.ProductID, record.Period).
			First(&stored).Error; err != nil {
			return err
		}
		*record = stored
		return nil
	})
}

// FindInRange returns records with from <= period <= to, ordered by period
func (r *GormMonthlySalesRepository) FindInRange(ctx context.Context, tenantID uuid.UUID, from, to string) ([]sales.MonthlySales, error) {
	query := conn(ctx, r.db).Scopes(tenantScope(tenantID))
	// YYYY-MM sorts lexicographically in date order
	if from != "" {
		query = query.Where("period >= ?", from)
	}
	if to != "" {
		query = query.Where("period <= ?", to)
	}

	var records []sales.MonthlySales
	if err := query.Order("period ASC, product_id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

var _ sales.MonthlySalesRepository = (*GormMonthlySalesRepository)(nil)
