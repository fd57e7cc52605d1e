package search

// DefaultPageSize is the default number of items per page.
const DefaultPageSize = 25

// maxPageSize bounds the page size a request may ask for.
const maxPageSize = 100

// Page is one page of a list together with its navigation data.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
}

// Paginate cuts items into pages and returns the requested one.
// Out of range page numbers are clamped to the first or last page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	totalItems := len(items)

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}

	if page > totalPages {
		page = totalPages
	}

	var (
		startIdx = (page - 1) * pageSize
		endIdx   = startIdx + pageSize
	)

	if endIdx > totalItems {
		endIdx = totalItems
	}

	pageItems := make([]T, 0)
	if startIdx < totalItems {
		pageItems = items[startIdx:endIdx]
	}

	return Page[T]{
		Items:       pageItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
}
