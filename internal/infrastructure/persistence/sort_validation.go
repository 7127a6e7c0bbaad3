package persistence

import (
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"name":          true,
	"category":      true,
	"status":        true,
	"purchase_cost": true,
	"variable_cost": true,
	"sale_price":    true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"contact_name": true,
	"is_active":    true,
}

// FixedCostSortFields contains allowed sort fields for fixed costs
var FixedCostSortFields = map[string]bool{
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"category":           true,
	"monthly_value":      true,
	"allocation_percent": true,
}

// tenantScope restricts a query to one organization's rows
func tenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// pageScope applies whitelisted ordering and pagination from filter
func pageScope(filter shared.Filter, allowed map[string]bool, defaultField string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := ValidateSortField(filter.OrderBy, allowed, defaultField)
		db = db.Order(field + " " + ValidateSortOrder(filter.OrderDir))
		if filter.PageSize > 0 {
			db = db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}

// searchScope matches a case-insensitive substring against columns
func searchScope(search string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		conds := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, c := range columns {
			conds[i] = "LOWER(" + c + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}
