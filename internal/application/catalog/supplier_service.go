package catalog

import (
	"cmp"
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService manages the supplier directory products can point at.
type SupplierService struct {
	supplierRepo catalog.SupplierRepository
}

func NewSupplierService(supplierRepo catalog.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := catalog.NewSupplier(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		if err := supplier.Update(req.Name, req.Notes); err != nil {
			return nil, err
		}
	}
	if err := supplier.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

func (s *SupplierService) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List returns one page of suppliers, alphabetical unless asked otherwise,
// and the total matching the filter.
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	query := filter.toDomain()

	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.CountForTenant(ctx, tenantID, query)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}

func (f SupplierListFilter) toDomain() shared.Filter {
	query := shared.DefaultFilter()
	query.Page = cmp.Or(f.Page, query.Page)
	query.PageSize = cmp.Or(f.PageSize, query.PageSize)
	query.OrderBy = cmp.Or(f.OrderBy, "name")
	query.OrderDir = cmp.Or(f.OrderDir, "asc")
	query.Search = f.Search
	if f.IsActive != nil {
		query.Filters["is_active"] = *f.IsActive
	}
	return query
}

// Update applies a partial update; nil fields keep their stored value.
func (s *SupplierService) Update(ctx context.Context, tenantID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	if err := supplier.Update(
		valueOr(req.Name, supplier.Name),
		valueOr(req.Notes, supplier.Notes),
	); err != nil {
		return nil, err
	}
	if err := supplier.SetContact(
		valueOr(req.ContactName, supplier.ContactName),
		valueOr(req.Phone, supplier.Phone),
		valueOr(req.Email, supplier.Email),
	); err != nil {
		return nil, err
	}
	switch {
	case req.IsActive == nil:
	case *req.IsActive:
		supplier.Activate()
	default:
		supplier.Deactivate()
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. Its products stay in the catalog without one.
func (s *SupplierService) Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return err
	}
	return s.supplierRepo.DeleteForTenant(ctx, tenantID, supplierID)
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
