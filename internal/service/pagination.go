package service

import "math"

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// normalizePage applies the listing defaults: page 1, limit 10.
// No upper bound is enforced on limit; callers can request arbitrarily
// large pages (see DESIGN.md).
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// paginate assembles the pagination envelope for a page over total rows.
func paginate(page, limit, total int) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
