package repository

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PageVerify clamps 1-based page and size params in place so no caller
// can request an unbounded page.
func PageVerify(page, size *int64) {
	if *page < 1 {
		*page = DefaultPage
	}
	if *size < 1 || *size > MaxPageSize {
		*size = DefaultPageSize
	}
}

// Offset converts a verified 1-based page to a query offset.
func Offset(page, size int64) int {
	return int((page - 1) * size)
}
