package datatable

// DefaultItemsPerPage is the page size used when a Config leaves it unset.
const DefaultItemsPerPage = 10

// PageInfo describes one page of a paginated result.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// HasPrev reports whether a previous page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// From returns the 1-based index of the first item on the page, or 0 when
// the page is empty.
func (p PageInfo) From() int {
	if p.TotalItems == 0 {
		return 0
	}
	return (p.Page-1)*p.PerPage + 1
}

// To returns the 1-based index of the last item on the page.
func (p PageInfo) To() int {
	if p.TotalItems == 0 {
		return 0
	}
	return min(p.Page*p.PerPage, p.TotalItems)
}

// TotalPages returns ceil(total/perPage), or 0 for an empty result. A
// non-positive perPage means everything fits on one page.
func TotalPages(total, perPage int) int {
	if total <= 0 {
		return 0
	}
	if perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// ClampPage bounds page to [1, TotalPages]. An empty result always yields 1.
func ClampPage(page, total, perPage int) int {
	pages := TotalPages(total, perPage)
	if page < 1 || pages == 0 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// Paginate returns the slice of records on page (clamped) and its PageInfo.
// A non-positive perPage returns every record on a single page. The returned
// slice shares storage with records but has its capacity capped.
func Paginate[R any](records []R, page, perPage int) ([]R, PageInfo) {
	total := len(records)
	if perPage <= 0 {
		return records[:total:total], PageInfo{
			Page:       1,
			PerPage:    total,
			TotalItems: total,
			TotalPages: TotalPages(total, perPage),
		}
	}

	page = ClampPage(page, total, perPage)
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return records[start:end:end], PageInfo{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: TotalPages(total, perPage),
	}
}
