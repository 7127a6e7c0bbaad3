package catalog

import (
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeProductCreated       = "catalog.product.created"
	EventTypeProductStatusChanged = "catalog.product.status_changed"
	EventTypeProductPriceChanged  = "catalog.product.price_changed"
)

// ProductCreatedEvent is recorded by NewProduct.
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

func newProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, p.TenantID),
		ProductID:       p.ID,
		Code:            p.Code,
		Name:            p.Name,
	}
}

// ProductStatusChangedEvent marks a product entering or leaving the set of
// active products that share the fixed costs.
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID     `json:"product_id"`
	OldStatus ProductStatus `json:"old_status"`
	NewStatus ProductStatus `json:"new_status"`
}

func newProductStatusChangedEvent(p *Product, from, to ProductStatus) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, p.TenantID),
		ProductID:       p.ID,
		OldStatus:       from,
		NewStatus:       to,
	}
}

// ProductPriceChangedEvent carries one entry of the price history log.
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
	Reason    string          `json:"reason,omitempty"`
}

func newProductPriceChangedEvent(p *Product, oldPrice decimal.Decimal, reason string) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, p.TenantID),
		ProductID:       p.ID,
		OldPrice:        oldPrice,
		NewPrice:        p.SalePrice,
		Reason:          reason,
	}
}
