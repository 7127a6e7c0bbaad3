package shared

import "context"

const DefaultPageSize = 20

// Transactor runs fn atomically. Repository calls made with the context
// handed to fn take part in the same transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Filter is the list query accepted by every tenant-scoped repository.
// Filters holds exact-match conditions keyed by column; each repository
// decides which keys it honours.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter lists the first page, newest first.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]any{},
	}
}

// Offset is the number of rows skipped before the current page.
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
