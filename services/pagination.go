package services

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// NormalizePagination clamps page to >= 1 and limit to [1, 50]. A missing or
// non-positive limit gets the default of 10; anything above the cap is
// silently lowered, not rejected.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// TotalPages is ceil(total/limit), zero when there are no results.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
