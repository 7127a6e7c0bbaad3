package dashboard

import (
	"context"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/sales"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodFilter bounds the sales considered, both ends inclusive.
// Empty bounds are open.
type PeriodFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Validate checks the YYYY-MM format and that From is not after To
func (f PeriodFilter) Validate() error {
	if f.From != "" {
		if _, err := sales.ParsePeriod(f.From); err != nil {
			return err
		}
	}
	if f.To != "" {
		if _, err := sales.ParsePeriod(f.To); err != nil {
			return err
		}
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return shared.NewDomainError("INVALID_PERIOD_RANGE", "Period start must not be after period end")
	}
	return nil
}

// KPIResponse carries the dashboard figures and the period they cover
type KPIResponse struct {
	From   string                 `json:"from,omitempty"`
	To     string                 `json:"to,omitempty"`
	Series []pricing.RoundedPoint `json:"series"`
	pricing.DashboardKPIs
}

// DashboardService computes the dashboard headline figures
type DashboardService struct {
	productRepo catalog.ProductRepository
	salesRepo   sales.MonthlySalesRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(productRepo catalog.ProductRepository, salesRepo sales.MonthlySalesRepository) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		salesRepo:   salesRepo,
	}
}

// KPIs returns total revenue and profit, the revenue-weighted average
// margin and the most and least profitable active products. An
// organization without products or sales gets zeroed figures marked empty.
func (s *DashboardService) KPIs(ctx context.Context, tenantID uuid.UUID, filter PeriodFilter) (*KPIResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	records, err := s.salesRepo.FindInRange(ctx, tenantID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	priced := make([]pricing.PricedProduct, len(products))
	for i := range products {
		priced[i] = products[i].Priced()
	}

	series := pricing.BuildSeries(sales.SeriesInputs(records))
	return &KPIResponse{
		From:          filter.From,
		To:            filter.To,
		Series:        pricing.RoundSeries(series),
		DashboardKPIs: pricing.KPIs(priced, series),
	}, nil
}

// RecordSalesRequest stores one product's sales for one month.
// Missing unit figures default to the product's current price and costs.
type RecordSalesRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Period    string           `json:"period" binding:"required,len=7"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
}

// SalesResponse represents a monthly sales record in API responses
type SalesResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Period    string          `json:"period"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// RecordSales stores the sales of one product for one month, replacing
// any previous record for that month.
func (s *DashboardService) RecordSales(ctx context.Context, tenantID uuid.UUID, req RecordSalesRequest) (*SalesResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}

	unitPrice := product.SalePrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	unitCost := product.PurchaseCost.Add(product.VariableCost)
	if req.UnitCost != nil {
		unitCost = *req.UnitCost
	}

	record, err := sales.NewMonthlySales(tenantID, product.ID, req.Period, req.Quantity, unitPrice, unitCost)
	if err != nil {
		return nil, err
	}

	if err := s.salesRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return &SalesResponse{
		ID:        record.ID,
		ProductID: record.ProductID,
		Period:    record.Period,
		Quantity:  record.Quantity,
		UnitPrice: record.UnitPrice,
		UnitCost:  record.UnitCost,
		Revenue:   record.Revenue(),
	}, nil
}
