package core

import (
	"github.com/JonMunkholm/storefront/internal/datatable"
)

// Query is a set of table interactions decoded from one request. Zero
// fields leave the corresponding state unchanged.
type Query struct {
	SortKey string // Column to sort by
	SortDir string // "asc" or "desc"; empty means ascending

	Page    int
	PerPage int

	// Filters and Search replace the active ones only when SetFilters is true.
	SetFilters bool
	Filters    []datatable.Filter
	Search     string
}

// IsZero reports whether q changes nothing.
func (q Query) IsZero() bool {
	return q.SortKey == "" && q.Page == 0 && q.PerPage == 0 && !q.SetFilters
}

// Apply performs q on g. Filters go first since they re-clamp the page,
// and the page goes last so it is clamped against the final result.
func (q Query) Apply(g datatable.Grid, maxPerPage int) error {
	if q.SetFilters {
		if err := g.SetFilters(q.Filters, q.Search); err != nil {
			return err
		}
	}

	if q.PerPage > 0 {
		perPage := q.PerPage
		if maxPerPage > 0 && perPage > maxPerPage {
			perPage = maxPerPage
		}
		if err := g.SetItemsPerPage(perPage); err != nil {
			return err
		}
	}

	// Sorting is set, never toggled, so repeating a request is harmless.
	if q.SortKey != "" {
		if err := g.SetSort(datatable.SortState{Key: q.SortKey, Dir: datatable.ParseDirection(q.SortDir)}); err != nil {
			return err
		}
	}

	if q.Page != 0 {
		g.SetPage(q.Page)
	}
	return nil
}
