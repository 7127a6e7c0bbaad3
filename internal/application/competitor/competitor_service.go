package competitor

import (
	"context"
	"sort"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/catalog"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/market"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// RecordObservationRequest represents a request to record a competitor price
type RecordObservationRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	CompetitorName string          `json:"competitor_name" binding:"required,min=1,max=200"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Source         string          `json:"source" binding:"max=500"`
	ObservedAt     *time.Time      `json:"observed_at"`
}

// ObservationResponse represents a competitor price observation in API responses
type ObservationResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	CompetitorName string          `json:"competitor_name"`
	Price          decimal.Decimal `json:"price"`
	Source         string          `json:"source,omitempty"`
	ObservedAt     time.Time       `json:"observed_at"`
}

// ComparisonResponse is one active product compared with its latest
// competitor observation
type ComparisonResponse struct {
	ProductID      uuid.UUID  `json:"product_id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	CompetitorName string     `json:"competitor_name,omitempty"`
	ObservedAt     *time.Time `json:"observed_at,omitempty"`
	pricing.CompetitorComparison
}

// CompetitorService records competitor prices and compares the catalog against them
type CompetitorService struct {
	priceRepo   market.CompetitorPriceRepository
	productRepo catalog.ProductRepository
}

// NewCompetitorService creates a new CompetitorService
func NewCompetitorService(priceRepo market.CompetitorPriceRepository, productRepo catalog.ProductRepository) *CompetitorService {
	return &CompetitorService{
		priceRepo:   priceRepo,
		productRepo: productRepo,
	}
}

// Record stores a competitor price observation for an existing product
func (s *CompetitorService) Record(ctx context.Context, tenantID uuid.UUID, req RecordObservationRequest) (*ObservationResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID); err != nil {
		return nil, err
	}

	var observedAt time.Time
	if req.ObservedAt != nil {
		observedAt = *req.ObservedAt
	}

	observation, err := market.NewCompetitorPrice(tenantID, req.ProductID, req.CompetitorName, req.Price, req.Source, observedAt)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.Save(ctx, observation); err != nil {
		return nil, err
	}

	return toObservationResponse(observation), nil
}

// Compare classifies every active product against its latest competitor
// observation. Products nobody has observed are reported as competitive.
func (s *CompetitorService) Compare(ctx context.Context, tenantID uuid.UUID) ([]ComparisonResponse, error) {
	products, err := s.productRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	latest, err := s.priceRepo.LatestByProduct(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	comparisons := make([]ComparisonResponse, 0, len(products))
	for i := range products {
		comparisons = append(comparisons, Compare(&products[i], latest))
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].Name < comparisons[j].Name
	})
	return comparisons, nil
}

// Compare classifies one product against the latest observations
func Compare(product *catalog.Product, latest map[uuid.UUID]market.CompetitorPrice) ComparisonResponse {
	resp := ComparisonResponse{
		ProductID: product.ID,
		Code:      product.Code,
		Name:      product.Name,
	}

	ours := product.SalePrice.InexactFloat64()
	observation, ok := latest[product.ID]
	if !ok {
		resp.CompetitorComparison = pricing.ClassifyCompetitor(ours, nil)
		return resp
	}

	theirs := observation.Price.InexactFloat64()
	observedAt := observation.ObservedAt
	resp.CompetitorName = observation.CompetitorName
	resp.ObservedAt = &observedAt
	resp.CompetitorComparison = pricing.ClassifyCompetitor(ours, &theirs)
	return resp
}

// History returns the most recent observations for a product, newest first
func (s *CompetitorService) History(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]ObservationResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	observations, err := s.priceRepo.FindByProduct(ctx, tenantID, productID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ObservationResponse, len(observations))
	for i := range observations {
		responses[i] = *toObservationResponse(&observations[i])
	}
	return responses, nil
}

// Delete removes an observation
func (s *CompetitorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.priceRepo.DeleteForTenant(ctx, tenantID, id)
}

func toObservationResponse(o *market.CompetitorPrice) *ObservationResponse {
	return &ObservationResponse{
		ID:             o.ID,
		ProductID:      o.ProductID,
		CompetitorName: o.CompetitorName,
		Price:          o.Price,
		Source:         o.Source,
		ObservedAt:     o.ObservedAt,
	}
}
