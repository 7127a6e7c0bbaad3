package market

import (
	"context"
	"strings"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompetitorPrice is one observation of a competitor's price for a product.
// The latest observation per product is the one compared against.
type CompetitorPrice struct {
	shared.BaseEntity
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_competitor_product_observed,priority:1"`
	CompetitorName string          `gorm:"type:varchar(200);not null"`
	Price          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Source         string          `gorm:"type:varchar(500)"`
	ObservedAt     time.Time       `gorm:"not null;index:idx_competitor_product_observed,priority:2"`
}

// TableName returns the table name for GORM
func (CompetitorPrice) TableName() string {
	return "competitor_prices"
}

// NewCompetitorPrice records an observation. A zero observedAt means now.
func NewCompetitorPrice(tenantID, productID uuid.UUID, competitor string, price decimal.Decimal, source string, observedAt time.Time) (*CompetitorPrice, error) {
	competitor = strings.TrimSpace(competitor)
	if competitor == "" {
		return nil, shared.NewDomainError("INVALID_COMPETITOR", "Competitor name cannot be empty")
	}
	if len(competitor) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPETITOR", "Competitor name cannot exceed 200 characters")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Competitor price must be positive")
	}
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	return &CompetitorPrice{
		BaseEntity:     shared.NewBaseEntity(),
		TenantID:       tenantID,
		ProductID:      productID,
		CompetitorName: competitor,
		Price:          price,
		Source:         source,
		ObservedAt:     observedAt,
	}, nil
}

// CompetitorPriceRepository defines the interface for competitor price persistence
type CompetitorPriceRepository interface {
	Save(ctx context.Context, price *CompetitorPrice) error
	// LatestByProduct returns the most recent observation for every product that has one
	LatestByProduct(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]CompetitorPrice, error)
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]CompetitorPrice, error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
