package response

// Page is the envelope every paginated read endpoint returns.
type Page[T any] struct {
	CurrentPage int64 `json:"currentPage"`
	CurrentSize int64 `json:"currentSize"`
	TotalPages  int64 `json:"totalPages"`
	TotalSize   int64 `json:"totalSize"`
	Items       []T   `json:"items"`
}

// NewPage wraps one page of items. TotalPages is derived from the total
// row count and the page size the caller actually got.
func NewPage[T any](page, size, total int64, items []T) Page[T] {
	totalPages := int64(0)
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		CurrentPage: page,
		CurrentSize: int64(len(items)),
		TotalPages:  totalPages,
		TotalSize:   total,
		Items:       items,
	}
}
