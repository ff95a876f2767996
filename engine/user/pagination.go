package user

// Pagination describes where a page sits within the filtered result set.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination derives page metadata from the filtered total.
func NewPagination(page, perPage int, total int64) Pagination {
	var pages int64
	if perPage > 0 && total > 0 {
		pp := int64(perPage)
		pages = (total + pp - 1) / pp
	}
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: int64(page) < pages,
		HasPrev: page > 1,
	}
}

// Page is one slice of a filtered listing.
type Page struct {
	Users      []*User    `json:"users"`
	Pagination Pagination `json:"pagination"`
}
