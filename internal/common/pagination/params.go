// Package pagination provides parameter clamping and page-count calculation
// for paginated search responses.
package pagination

// Clamping bounds for inbound pagination parameters. Values outside these
// ranges are clamped, not rejected, before reaching the aggregation core.
const (
	MinPage     = 1
	MaxPage     = 1000
	MinPageSize = 1
	MaxPageSize = 50

	DefaultPage     = 1
	DefaultPageSize = 10
)

// Params holds validated pagination parameters.
type Params struct {
	Page     int
	PageSize int
}

// Clamp constrains n to the inclusive range [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// ClampParams clamps page and page_size into their allowed ranges.
func ClampParams(page, pageSize int) Params {
	return Params{
		Page:     Clamp(page, MinPage, MaxPage),
		PageSize: Clamp(pageSize, MinPageSize, MaxPageSize),
	}
}
