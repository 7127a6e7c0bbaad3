// Package pricing exposes the pricing engine to the rest of the application:
// it loads an organization's stored figures, runs the engine and reports
// the outcome to telemetry.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/finance"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared/valueobject"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const serviceName = "pricing_calculator"

// Snapshot is the organization-wide input of every quote
type Snapshot struct {
	FixedCosts  []pricing.FixedCostInput
	ActiveCount int
	Tax         pricing.TaxInput
}

// CalculatorService computes suggested prices
type CalculatorService struct {
	engine        *pricing.Engine
	productRepo   catalog.ProductRepository
	costRepo      finance.FixedCostRepository
	taxRepo       finance.TaxConfigRepository
	metrics       *telemetry.PricingMetrics
	defaultMargin float64
}

// NewCalculatorService creates a new CalculatorService.
// defaultMargin is used whenever a request carries no margin.
func NewCalculatorService(
	engine *pricing.Engine,
	productRepo catalog.ProductRepository,
	costRepo finance.FixedCostRepository,
	taxRepo finance.TaxConfigRepository,
	defaultMargin float64,
) *CalculatorService {
	return &CalculatorService{
		engine:        engine,
		productRepo:   productRepo,
		costRepo:      costRepo,
		taxRepo:       taxRepo,
		defaultMargin: defaultMargin,
	}
}

// SetMetrics sets the instruments quotes are reported to
func (s *CalculatorService) SetMetrics(metrics *telemetry.PricingMetrics) {
	s.metrics = metrics
}

// DefaultMargin returns the margin used when a request carries none
func (s *CalculatorService) DefaultMargin() float64 {
	return s.defaultMargin
}

// Quote prices one stored product against the organization's current
// fixed costs, active product count and tax configuration.
func (s *CalculatorService) Quote(ctx context.Context, tenantID, productID uuid.UUID, req QuoteRequest) (*QuoteResponse, error) {
	margin, err := s.resolveMargin(req.DesiredMarginPercent)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "quote",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrProductID, productID.String(),
		telemetry.SpanAttrMargin, margin,
	)
	defer span.End()

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	snapshot, err := s.LoadSnapshot(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	quote, err := s.engine.Compute(product.PricingInput(), snapshot.FixedCosts, snapshot.ActiveCount, snapshot.Tax, margin)
	s.metrics.RecordQuote(ctx, telemetry.QuoteKindProduct, quote, err, time.Since(start))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrActiveCount, snapshot.ActiveCount,
		telemetry.SpanAttrSuggested, quote.SuggestedPrice.String(),
		telemetry.SpanAttrWarningCount, len(quote.Warnings),
	)

	id := product.ID
	return &QuoteResponse{
		ProductID:            &id,
		DesiredMarginPercent: margin,
		ActiveProductCount:   snapshot.ActiveCount,
		Quote:                quote,
	}, nil
}

// QuoteAdhoc prices figures that are not stored as a product. A scenario in
// the request replaces every stored organization figure.
func (s *CalculatorService) QuoteAdhoc(ctx context.Context, tenantID uuid.UUID, req AdhocQuoteRequest) (*QuoteResponse, error) {
	margin, err := s.resolveMargin(req.DesiredMarginPercent)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "quote_adhoc",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrMargin, margin,
	)
	defer span.End()

	var snapshot Snapshot
	if req.Scenario != nil {
		snapshot = req.Scenario.snapshot()
	} else {
		snapshot, err = s.LoadSnapshot(ctx, tenantID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	product := pricing.ProductInput{
		PurchaseCost: req.PurchaseCost.InexactFloat64(),
		VariableCost: req.VariableCost.InexactFloat64(),
		CurrentPrice: req.CurrentPrice.InexactFloat64(),
	}

	start := time.Now()
	quote, err := s.engine.Compute(product, snapshot.FixedCosts, snapshot.ActiveCount, snapshot.Tax, margin)
	s.metrics.RecordQuote(ctx, telemetry.QuoteKindAdhoc, quote, err, time.Since(start))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &QuoteResponse{
		DesiredMarginPercent: margin,
		ActiveProductCount:   snapshot.ActiveCount,
		Quote:                quote,
	}, nil
}

// QuoteCatalog prices every active product with one margin. Products whose
// margin cannot be reached are reported per item; they do not fail the call.
func (s *CalculatorService) QuoteCatalog(ctx context.Context, tenantID uuid.UUID, req CatalogQuoteRequest) (*CatalogQuoteResponse, error) {
	margin, err := s.resolveMargin(req.DesiredMarginPercent)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "quote_catalog",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrMargin, margin,
	)
	defer span.End()

	products, err := s.productRepo.FindActive(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	snapshot, err := s.LoadSnapshot(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	results, err := s.PriceProducts(ctx, products, snapshot, margin)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := &CatalogQuoteResponse{
		DesiredMarginPercent: margin,
		ActiveProductCount:   snapshot.ActiveCount,
		AllocatedFixedCost:   moneyOf(s.engine.Policy().Allocate(snapshot.FixedCosts, snapshot.ActiveCount)),
		BlendedTaxPercent:    moneyOf(snapshot.Tax.BlendedPercent()),
		Items:                make([]CatalogQuoteItem, len(results)),
	}
	for i, r := range results {
		item := CatalogQuoteItem{
			ProductID: products[i].ID,
			Code:      products[i].Code,
			Name:      products[i].Name,
		}
		if r.Err != nil {
			item.Error = ToQuoteError(r.Err)
			response.Failed++
		} else {
			q := r.Quote
			item.Quote = &q
		}
		response.Items[i] = item
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrCatalogSize, len(products),
		telemetry.SpanAttrActiveCount, snapshot.ActiveCount,
		telemetry.SpanAttrFailedQuotes, response.Failed,
	)
	return response, nil
}

// PriceProducts runs the engine over products concurrently, keeping their
// order. Per-product failures are carried in each result.
func (s *CalculatorService) PriceProducts(ctx context.Context, products []catalog.Product, snapshot Snapshot, margin float64) ([]pricing.CatalogQuote, error) {
	items := make([]pricing.CatalogItem, len(products))
	for i := range products {
		items[i] = pricing.CatalogItem{ID: products[i].ID, Product: products[i].PricingInput()}
	}

	var (
		results []pricing.CatalogQuote
		err     error
	)
	start := time.Now()
	telemetry.Profile(ctx, "price_catalog", func(c context.Context) {
		results, err = s.engine.ComputeCatalog(c, items, snapshot.FixedCosts, snapshot.ActiveCount, snapshot.Tax, margin)
	})
	if err != nil {
		return nil, fmt.Errorf("price catalog: %w", err)
	}
	s.metrics.RecordCatalog(ctx, results, time.Since(start))
	return results, nil
}

// LoadSnapshot reads the ledger, the active product count and the tax
// configuration concurrently. A missing tax configuration means zero rates.
func (s *CalculatorService) LoadSnapshot(ctx context.Context, tenantID uuid.UUID) (Snapshot, error) {
	var (
		costs  []finance.FixedCost
		active int64
		tax    *finance.TaxConfig
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		costs, err = s.costRepo.FindLedger(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("load fixed costs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		active, err = s.productRepo.CountByStatus(gctx, tenantID, catalog.ProductStatusActive)
		if err != nil {
			return fmt.Errorf("count active products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tax, err = s.taxRepo.FindByTenant(gctx, tenantID)
		if errors.Is(err, shared.ErrNotFound) {
			tax = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("load tax configuration: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		FixedCosts:  finance.LedgerInputs(costs),
		ActiveCount: int(active),
		Tax:         tax.PricingInput(),
	}, nil
}

// resolveMargin applies the default and validates the margin range.
// Margins the tax rate makes unreachable are left to the engine.
func (s *CalculatorService) resolveMargin(requested *float64) (float64, error) {
	margin := s.defaultMargin
	if requested != nil {
		margin = *requested
	}
	if _, err := valueobject.NewPercentage(margin); err != nil {
		return 0, shared.NewDomainError("INVALID_MARGIN", "Desired margin must be between 0 and 100")
	}
	return margin, nil
}

func (sc *Scenario) snapshot() Snapshot {
	costs := make([]pricing.FixedCostInput, len(sc.FixedCosts))
	for i, c := range sc.FixedCosts {
		costs[i] = pricing.FixedCostInput{MonthlyValue: c.MonthlyValue, AllocationPercent: c.AllocationPercent}
	}
	fees := make([]pricing.FeeInput, len(sc.AdditionalFees))
	for i, f := range sc.AdditionalFees {
		fees[i] = pricing.FeeInput{Name: fmt.Sprintf("fee_%d", i+1), Percentage: f}
	}
	return Snapshot{
		FixedCosts:  costs,
		ActiveCount: sc.ActiveProductCount,
		Tax: pricing.TaxInput{
			SalesTax:       sc.SalesTax,
			MarketplaceFee: sc.MarketplaceFee,
			CardFee:        sc.CardFee,
			AdditionalFees: fees,
		},
	}
}

// ToQuoteError maps a per-product pricing failure to its API form
func ToQuoteError(err error) *QuoteError {
	var unsolvable *pricing.UnsolvableMarginError
	if errors.As(err, &unsolvable) {
		ceiling := unsolvable.MarginCeiling()
		return &QuoteError{Code: "UNSOLVABLE_MARGIN", Message: err.Error(), MarginCeiling: &ceiling}
	}
	if errors.Is(err, pricing.ErrNonFiniteInput) {
		return &QuoteError{Code: "NON_FINITE_INPUT", Message: err.Error()}
	}
	return &QuoteError{Code: "PRICING_FAILED", Message: err.Error()}
}

func moneyOf(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(pricing.MoneyPlaces)
}
