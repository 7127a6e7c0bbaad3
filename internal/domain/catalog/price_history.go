package catalog

import (
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceHistory is one entry of a product's sale price log
type PriceHistory struct {
	shared.BaseEntity
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_history_product"`
	OldPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason    string          `gorm:"type:varchar(200)"`
	ChangedAt time.Time       `gorm:"not null;index:idx_price_history_product"`
}

// TableName returns the table name for GORM
func (PriceHistory) TableName() string {
	return "price_history"
}

// NewPriceHistoryFromEvent builds a log entry from a price change event
func NewPriceHistoryFromEvent(event *ProductPriceChangedEvent) *PriceHistory {
	return &PriceHistory{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   event.TenantID(),
		ProductID:  event.ProductID,
		OldPrice:   event.OldPrice,
		NewPrice:   event.NewPrice,
		Reason:     event.Reason,
		ChangedAt:  event.OccurredAt(),
	}
}

// ChangePercent is the relative change from the old price, 0 when the old price was 0
func (h *PriceHistory) ChangePercent() decimal.Decimal {
	if h.OldPrice.IsZero() {
		return decimal.Zero
	}
	return h.NewPrice.Sub(h.OldPrice).Div(h.OldPrice).Mul(decimal.NewFromInt(100)).Round(1)
}
