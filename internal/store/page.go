package store

// Pagination defaults. Callers that omit page parameters get the first
// page of six items, matching the client's board layout.
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 6
	MaxPageSize       = 100
)

// Page is a bounded slice of a result set plus the total count, so clients
// can render pagination controls without a second query.
type Page[T any] struct {
	Items      []T   `json:"content"`
	TotalCount int64 `json:"total_count"`
	PageNumber int   `json:"page"`
	PageSize   int   `json:"size"`
}

// NewPage builds a Page from items already limited to the page window.
func NewPage[T any](items []T, totalCount int64, pageNumber, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}

// NormalizePagination clamps caller-supplied pagination parameters to sane
// bounds, applying the defaults for out-of-range values.
func NormalizePagination(pageNumber, pageSize int) (int, int) {
	if pageNumber < 0 {
		pageNumber = DefaultPageNumber
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize
}
