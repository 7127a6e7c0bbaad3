package report

import (
	"context"
	"sort"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/dashboard"
	pricingapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/market"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/sales"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const serviceName = "pricing_report"

// Pricer prices a set of products against the organization's cost and tax figures
type Pricer interface {
	DefaultMargin() float64
	LoadSnapshot(ctx context.Context, tenantID uuid.UUID) (pricingapp.Snapshot, error)
	PriceProducts(ctx context.Context, products []catalog.Product, snapshot pricingapp.Snapshot, margin float64) ([]pricing.CatalogQuote, error)
}

// ReportService builds the pricing report and the revenue/profit series
type ReportService struct {
	productRepo    catalog.ProductRepository
	competitorRepo market.CompetitorPriceRepository
	salesRepo      sales.MonthlySalesRepository
	pricer         Pricer
}

// NewReportService creates a new ReportService
func NewReportService(
	productRepo catalog.ProductRepository,
	competitorRepo market.CompetitorPriceRepository,
	salesRepo sales.MonthlySalesRepository,
	pricer Pricer,
) *ReportService {
	return &ReportService{
		productRepo:    productRepo,
		competitorRepo: competitorRepo,
		salesRepo:      salesRepo,
		pricer:         pricer,
	}
}

// ===================== Pricing Report =====================

// PricingReportRequest selects the margin the suggested prices target
type PricingReportRequest struct {
	DesiredMarginPercent *float64 `form:"margin" binding:"omitempty,percentage"`
	Status               string   `form:"status" binding:"omitempty,oneof=active inactive"`
}

// PricingReportRow is one product with its current and suggested figures
type PricingReportRow struct {
	ProductID      uuid.UUID                    `json:"product_id"`
	Code           string                       `json:"code"`
	Name           string                       `json:"name"`
	Category       string                       `json:"category,omitempty"`
	Status         catalog.ProductStatus        `json:"status"`
	CurrentPrice   decimal.Decimal              `json:"current_price"`
	UnitCost       decimal.Decimal              `json:"unit_cost"`
	CurrentProfit  decimal.Decimal              `json:"current_profit"`
	CurrentMargin  decimal.Decimal              `json:"current_margin"`
	Suggestion     *pricing.Quote               `json:"suggestion,omitempty"`
	Error          *pricingapp.QuoteError       `json:"error,omitempty"`
	Competitor     pricing.CompetitorComparison `json:"competitor"`
	CompetitorName string                       `json:"competitor_name,omitempty"`
}

// PricingReportSummary counts rows by outcome
type PricingReportSummary struct {
	Products    int `json:"products"`
	Priced      int `json:"priced"`
	Failed      int `json:"failed"`
	Competitive int `json:"competitive"`
	Attention   int `json:"attention"`
	AboveMarket int `json:"above_market"`
}

// PricingReportResponse is the full pricing report
type PricingReportResponse struct {
	DesiredMarginPercent float64              `json:"desired_margin_percent"`
	ActiveProductCount   int                  `json:"active_product_count"`
	BlendedTaxPercent    decimal.Decimal      `json:"blended_tax_percent"`
	Summary              PricingReportSummary `json:"summary"`
	Rows                 []PricingReportRow   `json:"rows"`
}

// PricingReport prices every product, inactive ones included, and compares
// each with its latest competitor observation. Rows are ordered by name.
func (s *ReportService) PricingReport(ctx context.Context, tenantID uuid.UUID, req PricingReportRequest) (*PricingReportResponse, error) {
	margin := s.pricer.DefaultMargin()
	if req.DesiredMarginPercent != nil {
		margin = *req.DesiredMarginPercent
	}
	if _, err := valueobject.NewPercentage(margin); err != nil {
		return nil, shared.NewDomainError("INVALID_MARGIN", "Desired margin must be between 0 and 100")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "pricing_report",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrMargin, margin,
	)
	defer span.End()

	filter := shared.Filter{
		OrderBy:  "name",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	snapshot, err := s.pricer.LoadSnapshot(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	latest, err := s.competitorRepo.LatestByProduct(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	quotes, err := s.pricer.PriceProducts(ctx, products, snapshot, margin)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := &PricingReportResponse{
		DesiredMarginPercent: margin,
		ActiveProductCount:   snapshot.ActiveCount,
		BlendedTaxPercent:    decimal.NewFromFloat(snapshot.Tax.BlendedPercent()).Round(pricing.MoneyPlaces),
		Rows:                 make([]PricingReportRow, len(products)),
	}
	for i := range products {
		row := buildRow(&products[i], quotes[i], latest)
		response.Rows[i] = row
		response.Summary.add(row)
	}

	sort.SliceStable(response.Rows, func(i, j int) bool {
		return response.Rows[i].Name < response.Rows[j].Name
	})

	telemetry.SetAttributes(span,
		telemetry.SpanAttrCatalogSize, len(products),
		telemetry.SpanAttrFailedQuotes, response.Summary.Failed,
	)
	return response, nil
}

func buildRow(p *catalog.Product, quote pricing.CatalogQuote, latest map[uuid.UUID]market.CompetitorPrice) PricingReportRow {
	priced := p.Priced()
	row := PricingReportRow{
		ProductID:     p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Category:      p.Category,
		Status:        p.Status,
		CurrentPrice:  p.SalePrice,
		UnitCost:      p.PurchaseCost.Add(p.VariableCost),
		CurrentProfit: decimal.NewFromFloat(priced.UnitProfit()).Round(pricing.MoneyPlaces),
		CurrentMargin: decimal.NewFromFloat(priced.UnitMargin()).Round(pricing.MarginPlaces),
	}

	if quote.Err != nil {
		row.Error = pricingapp.ToQuoteError(quote.Err)
	} else {
		q := quote.Quote
		row.Suggestion = &q
	}

	if observation, ok := latest[p.ID]; ok {
		theirs := observation.Price.InexactFloat64()
		row.Competitor = pricing.ClassifyCompetitor(priced.Price, &theirs)
		row.CompetitorName = observation.CompetitorName
	} else {
		row.Competitor = pricing.ClassifyCompetitor(priced.Price, nil)
	}
	return row
}

func (s *PricingReportSummary) add(row PricingReportRow) {
	s.Products++
	if row.Error != nil {
		s.Failed++
	} else {
		s.Priced++
	}
	switch row.Competitor.Status {
	case pricing.StatusCompetitive:
		s.Competitive++
	case pricing.StatusAttention:
		s.Attention++
	case pricing.StatusAboveMarket:
		s.AboveMarket++
	}
}

// ===================== Series Report =====================

// SeriesResponse is the monthly revenue/profit series with its totals
type SeriesResponse struct {
	From          string                 `json:"from,omitempty"`
	To            string                 `json:"to,omitempty"`
	Points        []pricing.RoundedPoint `json:"points"`
	TotalRevenue  decimal.Decimal        `json:"total_revenue"`
	TotalProfit   decimal.Decimal        `json:"total_profit"`
	AverageMargin decimal.Decimal        `json:"average_margin"`
}

// Series returns revenue and profit per month in ascending period order
func (s *ReportService) Series(ctx context.Context, tenantID uuid.UUID, filter dashboard.PeriodFilter) (*SeriesResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.salesRepo.FindInRange(ctx, tenantID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	points := pricing.BuildSeries(sales.SeriesInputs(records))
	revenue, profit := pricing.Totals(points)
	return &SeriesResponse{
		From:          filter.From,
		To:            filter.To,
		Points:        pricing.RoundSeries(points),
		TotalRevenue:  decimal.NewFromFloat(revenue).Round(pricing.MoneyPlaces),
		TotalProfit:   decimal.NewFromFloat(profit).Round(pricing.MoneyPlaces),
		AverageMargin: decimal.NewFromFloat(pricing.AverageMargin(profit, revenue)).Round(pricing.MarginPlaces),
	}, nil
}
