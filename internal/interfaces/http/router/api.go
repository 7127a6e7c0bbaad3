package router

import (
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers served under the versioned API
type Handlers struct {
	Product    *handler.ProductHandler
	Supplier   *handler.SupplierHandler
	Finance    *handler.FinanceHandler
	Pricing    *handler.PricingHandler
	Dashboard  *handler.DashboardHandler
	Competitor *handler.CompetitorHandler
	Report     *handler.ReportHandler
	System     *handler.SystemHandler
}

// DomainGroups returns the route groups of the pricing API, one per
// bounded context
func DomainGroups(h Handlers) []RouteRegistrar {
	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.Group("products", "/products").
		POST("", h.Product.Create).
		GET("", h.Product.List).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete).
		PUT("/:id/price", h.Product.UpdatePrice).
		POST("/:id/activate", h.Product.Activate).
		POST("/:id/deactivate", h.Product.Deactivate).
		GET("/:id/price-history", h.Product.PriceHistory)
	catalog.Group("suppliers", "/suppliers").
		POST("", h.Supplier.Create).
		GET("", h.Supplier.List).
		GET("/:id", h.Supplier.GetByID).
		PUT("/:id", h.Supplier.Update).
		DELETE("/:id", h.Supplier.Delete)

	finance := NewDomainGroup("finance", "/finance")
	finance.Group("fixed-costs", "/fixed-costs").
		POST("", h.Finance.CreateFixedCost).
		GET("", h.Finance.ListFixedCosts).
		GET("/summary", h.Finance.FixedCostSummary).
		GET("/:id", h.Finance.GetFixedCost).
		PUT("/:id", h.Finance.UpdateFixedCost).
		DELETE("/:id", h.Finance.DeleteFixedCost)
	finance.GET("/tax-config", h.Finance.GetTaxConfig).
		PUT("/tax-config", h.Finance.SaveTaxConfig)

	pricing := NewDomainGroup("pricing", "/pricing").
		POST("/quote", h.Pricing.QuoteAdhoc).
		GET("/products/:id/quote", h.Pricing.QuoteProduct).
		GET("/catalog", h.Pricing.QuoteCatalog)

	dashboard := NewDomainGroup("dashboard", "/dashboard").
		GET("/kpis", h.Dashboard.KPIs).
		POST("/sales", h.Dashboard.RecordSales)

	competitors := NewDomainGroup("competitors", "/competitors").
		GET("", h.Competitor.Compare).
		POST("", h.Competitor.Record).
		GET("/products/:id/history", h.Competitor.History).
		DELETE("/observations/:id", h.Competitor.Delete)

	reports := NewDomainGroup("reports", "/reports").
		GET("/pricing", h.Report.PricingReport).
		GET("/series", h.Report.Series)

	system := NewDomainGroup("system", "").
		GET("/health", h.System.Health)

	return []RouteRegistrar{catalog, finance, pricing, dashboard, competitors, reports, system}
}
