package models

// Pagination describes one page of a listing.
type Pagination struct {
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination derives page counts from the requested page, limit and total.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:    page,
		Pages:   pages,
		Total:   total,
		HasNext: int64(page*limit) < total,
		HasPrev: page > 1,
	}
}
