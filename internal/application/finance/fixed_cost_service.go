package finance

import (
	"context"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/finance"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedCostService manages the organization's fixed-cost ledger
type FixedCostService struct {
	costRepo    finance.FixedCostRepository
	productRepo catalog.ProductRepository
	policy      pricing.AllocationPolicy
}

// NewFixedCostService creates a new FixedCostService
func NewFixedCostService(
	costRepo finance.FixedCostRepository,
	productRepo catalog.ProductRepository,
	policy pricing.AllocationPolicy,
) *FixedCostService {
	return &FixedCostService{
		costRepo:    costRepo,
		productRepo: productRepo,
		policy:      policy,
	}
}

// ===================== DTOs =====================

// FixedCostRequest represents a request to create or replace a fixed cost
type FixedCostRequest struct {
	Name              string          `json:"name" binding:"required,min=1,max=200"`
	Category          string          `json:"category" binding:"omitempty,oneof=RENT UTILITIES SALARY SOFTWARE MARKETING OTHER"`
	MonthlyValue      decimal.Decimal `json:"monthly_value"`
	AllocationPercent float64         `json:"allocation_percent" binding:"percentage"`
	CreatedBy         *uuid.UUID      `json:"-"`
}

// FixedCostResponse represents a fixed cost in API responses
type FixedCostResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	MonthlyValue      decimal.Decimal `json:"monthly_value"`
	AllocationPercent decimal.Decimal `json:"allocation_percent"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FixedCostListFilter represents filter options for the ledger list
type FixedCostListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// FixedCostSummary aggregates the whole ledger together with the share of it
// charged to each active product.
type FixedCostSummary struct {
	TotalMonthly         decimal.Decimal          `json:"total_monthly"`
	AllocatedPercent     decimal.Decimal          `json:"allocated_percent"`
	AllocationStatus     pricing.AllocationStatus `json:"allocation_status"`
	Entries              int                      `json:"entries"`
	ActiveProducts       int64                    `json:"active_products"`
	DampeningFactor      float64                  `json:"dampening_factor"`
	PerProductAllocation decimal.Decimal          `json:"per_product_allocation"`
}

func toFixedCostResponse(fc *finance.FixedCost) FixedCostResponse {
	return FixedCostResponse{
		ID:                fc.ID,
		Name:              fc.Name,
		Category:          string(fc.Category),
		MonthlyValue:      fc.MonthlyValue,
		AllocationPercent: fc.AllocationPercent,
		CreatedAt:         fc.CreatedAt,
		UpdatedAt:         fc.UpdatedAt,
	}
}

// ===================== Operations =====================

// Create adds an entry to the ledger
func (s *FixedCostService) Create(ctx context.Context, tenantID uuid.UUID, req FixedCostRequest) (*FixedCostResponse, error) {
	allocation, err := allocationPercentage(req.AllocationPercent)
	if err != nil {
		return nil, err
	}

	fc, err := finance.NewFixedCost(tenantID, req.Name, finance.FixedCostCategory(req.Category), req.MonthlyValue, allocation)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		fc.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.costRepo.Save(ctx, fc); err != nil {
		return nil, err
	}

	response := toFixedCostResponse(fc)
	return &response, nil
}

// GetByID retrieves one ledger entry
func (s *FixedCostService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*FixedCostResponse, error) {
	fc, err := s.costRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	response := toFixedCostResponse(fc)
	return &response, nil
}

// List retrieves a page of the ledger
func (s *FixedCostService) List(ctx context.Context, tenantID uuid.UUID, filter FixedCostListFilter) ([]FixedCostResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	costs, err := s.costRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.costRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]FixedCostResponse, len(costs))
	for i := range costs {
		responses[i] = toFixedCostResponse(&costs[i])
	}
	return responses, total, nil
}

// Update replaces every editable field of an entry
func (s *FixedCostService) Update(ctx context.Context, tenantID, id uuid.UUID, req FixedCostRequest) (*FixedCostResponse, error) {
	allocation, err := allocationPercentage(req.AllocationPercent)
	if err != nil {
		return nil, err
	}

	fc, err := s.costRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := fc.Update(req.Name, finance.FixedCostCategory(req.Category), req.MonthlyValue, allocation); err != nil {
		return nil, err
	}

	if err := s.costRepo.Save(ctx, fc); err != nil {
		return nil, err
	}

	response := toFixedCostResponse(fc)
	return &response, nil
}

// Delete removes an entry from the ledger
func (s *FixedCostService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.costRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.costRepo.DeleteForTenant(ctx, tenantID, id)
}

// Summary totals the ledger, reports whether the allocation percentages add
// up to 100 and shows the fixed cost currently charged to each active product.
func (s *FixedCostService) Summary(ctx context.Context, tenantID uuid.UUID) (*FixedCostSummary, error) {
	costs, err := s.costRepo.FindLedger(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	active, err := s.productRepo.CountByStatus(ctx, tenantID, catalog.ProductStatusActive)
	if err != nil {
		return nil, err
	}

	inputs := finance.LedgerInputs(costs)
	summary := pricing.Summarize(inputs)

	return &FixedCostSummary{
		TotalMonthly:         decimal.NewFromFloat(summary.TotalMonthly).Round(pricing.MoneyPlaces),
		AllocatedPercent:     decimal.NewFromFloat(summary.AllocatedPercent).Round(pricing.MoneyPlaces),
		AllocationStatus:     summary.Status,
		Entries:              summary.Entries,
		ActiveProducts:       active,
		DampeningFactor:      s.policy.DampeningFactor,
		PerProductAllocation: decimal.NewFromFloat(s.policy.Allocate(inputs, int(active))).Round(pricing.MoneyPlaces),
	}, nil
}

func allocationPercentage(v float64) (valueobject.Percentage, error) {
	p, err := valueobject.NewPercentage(v)
	if err != nil {
		return valueobject.Percentage{}, shared.NewDomainError("INVALID_ALLOCATION", "Allocation percent must be between 0 and 100")
	}
	return p, nil
}
