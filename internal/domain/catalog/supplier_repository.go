package catalog

import (
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierRepository persists suppliers. Deleting one detaches it from its
// products rather than deleting them.
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
