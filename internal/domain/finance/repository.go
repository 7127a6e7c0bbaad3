package finance

import (
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// FixedCostRepository defines the interface for fixed cost persistence
type FixedCostRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FixedCost, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FixedCost, error)
	// FindLedger returns every fixed cost of the tenant, unpaginated
	FindLedger(ctx context.Context, tenantID uuid.UUID) ([]FixedCost, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, cost *FixedCost) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// TaxConfigRepository defines the interface for tax configuration persistence
type TaxConfigRepository interface {
	// FindByTenant returns shared.ErrNotFound when the tenant has no configuration yet
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*TaxConfig, error)
	// Save creates or updates the configuration and replaces its additional fees
	Save(ctx context.Context, config *TaxConfig) error
}
