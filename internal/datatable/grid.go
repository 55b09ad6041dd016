package datatable

import (
	"context"
	"io"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

// Grid is the type-erased surface of a Table. Records and ids are addressed
// by their KeyOf form so callers need not know the record type.
type Grid interface {
	SortBy(key string) error
	SetSort(s SortState) error
	SetPage(page int)
	SetItemsPerPage(n int) error
	SetFilters(filters []Filter, search string) error
	SetLocale(l i18n.Locale)

	ToggleKey(key string) error
	SelectVisible() error
	DeselectVisible() error
	SelectFiltered() error
	ClearSelection()

	DispatchKey(ctx context.Context, action, key string) error

	State() State
	Restore(st State)
	View() View
	WriteCSV(w io.Writer) error
}
