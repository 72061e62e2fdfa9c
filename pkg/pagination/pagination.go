package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any page can request.
	MaxPageSize = 100
)

// Page is a page-numbered slice of a larger result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NormalizePage enforces 1-based page numbers.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// NormalizePageSize enforces the configured default and maximum page sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate slices items for the requested page. Pages beyond range yield an
// empty slice while Total and TotalPages stay correct; that is not an error.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	page = NormalizePage(page)
	pageSize = NormalizePageSize(pageSize)

	total := len(items)
	start := (page - 1) * pageSize
	end := start + pageSize

	var slice []T
	switch {
	case start >= total:
		slice = []T{}
	case end > total:
		slice = items[start:total]
	default:
		slice = items[start:end]
	}

	return Page[T]{
		Items:      slice,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}
