package catalog

import (
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository persists products. Every lookup is scoped to one
// organization and a product outside it reads as shared.ErrNotFound.
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// FindActive returns the products that share the fixed costs, unpaginated.
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status ProductStatus) (int64, error)

	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, product *Product) error

	// DeleteForTenant removes the product together with its price history,
	// competitor observations and monthly sales.
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PriceHistoryRepository is the append-only sale price log.
type PriceHistoryRepository interface {
	Save(ctx context.Context, entry *PriceHistory) error
	// FindByProduct returns the newest entries first. A limit of 0 or less
	// returns the whole log.
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]PriceHistory, error)
}
