package pagination

// CalculateOffset calculates the slice offset for a 1-based page number.
//
// Formula: offset = (page - 1) * pageSize
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// CalculateTotalPages calculates the estimated page count from a total item
// count using ceiling division. The result is always at least 1, even for an
// empty result set.
//
// Examples:
//   - Total 0, PageSize 10 -> 1 page
//   - Total 10, PageSize 10 -> 1 page
//   - Total 11, PageSize 10 -> 2 pages
func CalculateTotalPages(total, pageSize int) int {
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
