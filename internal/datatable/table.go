package datatable

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

// Record is anything with a stable unique identifier.
type Record[ID comparable] interface {
	RecordID() ID
}

// Config holds per-table settings.
type Config struct {
	Pagination   bool
	ItemsPerPage int
	Selectable   bool
	DefaultSort  SortState
	Locale       i18n.Locale
	MinWidth     string // Minimum table width hint for the renderer
}

// DefaultConfig enables pagination at DefaultItemsPerPage rows and selection.
func DefaultConfig() Config {
	return Config{
		Pagination:   true,
		ItemsPerPage: DefaultItemsPerPage,
		Selectable:   true,
		Locale:       i18n.Default,
	}
}

// Table is a sortable, filterable, paginated, selectable view over a slice
// of records.
type Table[R Record[ID], ID comparable] struct {
	cfg     Config
	columns []resolvedColumn[R]
	colIdx  map[string]int
	actions []Action[R]
	actIdx  map[string]int

	records []R
	ids     map[ID]int
	keys    map[string]ID

	sort    SortState
	page    int
	perPage int
	filters []Filter
	search  string
	locale  i18n.Locale

	selection *Selection[ID]

	// derived
	filtered []R
	ordered  []R
	visible  []R
	info     PageInfo
}

// New validates columns, actions and cfg and builds a table over records.
// The records slice is copied; records themselves are never modified.
func New[R Record[ID], ID comparable](records []R, columns []Column[R], cfg Config, actions ...Action[R]) (*Table[R, ID], error) {
	cols, colIdx, err := resolveColumns(columns)
	if err != nil {
		return nil, err
	}

	actIdx, err := indexActions(actions)
	if err != nil {
		return nil, err
	}

	if cfg.Pagination && cfg.ItemsPerPage <= 0 {
		return nil, fmt.Errorf("%w: items per page must be positive, got %d", ErrInvalidConfig, cfg.ItemsPerPage)
	}

	if !cfg.DefaultSort.IsZero() {
		i, ok := colIdx[cfg.DefaultSort.Key]
		if !ok {
			return nil, fmt.Errorf("%w: default sort on unknown column %q", ErrInvalidConfig, cfg.DefaultSort.Key)
		}
		if !cols[i].Sortable {
			return nil, fmt.Errorf("%w: default sort on unsortable column %q", ErrInvalidConfig, cfg.DefaultSort.Key)
		}
		cfg.DefaultSort.Dir = ParseDirection(string(cfg.DefaultSort.Dir))
	}

	if !cfg.Locale.Valid() {
		cfg.Locale = i18n.Default
	}

	t := &Table[R, ID]{
		cfg:       cfg,
		columns:   cols,
		colIdx:    colIdx,
		actions:   slices.Clone(actions),
		actIdx:    actIdx,
		sort:      cfg.DefaultSort,
		page:      1,
		perPage:   cfg.ItemsPerPage,
		locale:    cfg.Locale,
		selection: NewSelection[ID](),
	}

	if err := t.SetRecords(records); err != nil {
		return nil, err
	}
	return t, nil
}

// SetRecords replaces the input set. Selected ids no longer present are
// dropped and the current page is re-clamped.
func (t *Table[R, ID]) SetRecords(records []R) error {
	ids := make(map[ID]int, len(records))
	keys := make(map[string]ID, len(records))
	for i, r := range records {
		id := r.RecordID()
		key := KeyOf(id)
		if _, dup := ids[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRecord, key)
		}
		if _, dup := keys[key]; dup {
			return fmt.Errorf("%w: key %s", ErrDuplicateRecord, key)
		}
		ids[id] = i
		keys[key] = id
	}

	t.records = slices.Clone(records)
	t.ids = ids
	t.keys = keys

	t.selection.Retain(func(id ID) bool {
		_, ok := ids[id]
		return ok
	})

	t.derive()
	return nil
}

// Len returns the number of input records.
func (t *Table[R, ID]) Len() int {
	return len(t.records)
}

// Config returns the table configuration.
func (t *Table[R, ID]) Config() Config {
	return t.cfg
}

// ---------------------------------------------------------------------------
// Sorting
// ---------------------------------------------------------------------------

// SortBy makes key the active sort. Sorting by the active key flips the
// direction; a new key starts ascending.
func (t *Table[R, ID]) SortBy(key string) error {
	next := SortState{Key: key, Dir: Ascending}
	if t.sort.Key == key {
		next.Dir = t.sort.Dir.Flip()
	}
	return t.SetSort(next)
}

// SetSort sets the active sort directly. A zero SortState restores the
// input order.
func (t *Table[R, ID]) SetSort(s SortState) error {
	if err := t.checkSort(s); err != nil {
		return err
	}
	if !s.IsZero() {
		s.Dir = ParseDirection(string(s.Dir))
	}
	t.sort = s
	t.derive()
	return nil
}

func (t *Table[R, ID]) checkSort(s SortState) error {
	if s.IsZero() {
		return nil
	}
	i, ok := t.colIdx[s.Key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, s.Key)
	}
	if !t.columns[i].Sortable {
		return fmt.Errorf("%w: %q", ErrColumnNotSortable, s.Key)
	}
	return nil
}

// Sort returns the active sort.
func (t *Table[R, ID]) Sort() SortState {
	return t.sort
}

// ---------------------------------------------------------------------------
// Pagination
// ---------------------------------------------------------------------------

// SetPage moves to page. Out-of-range values are clamped.
func (t *Table[R, ID]) SetPage(page int) {
	t.page = page
	t.paginate()
}

// SetItemsPerPage changes the page size and re-clamps the current page.
func (t *Table[R, ID]) SetItemsPerPage(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: items per page must be positive, got %d", ErrInvalidConfig, n)
	}
	t.perPage = n
	t.paginate()
	return nil
}

// PageInfo describes the current page.
func (t *Table[R, ID]) PageInfo() PageInfo {
	return t.info
}

// Visible returns the records on the current page.
func (t *Table[R, ID]) Visible() []R {
	return slices.Clone(t.visible)
}

// Ordered returns every record passing the filters, in sort order.
func (t *Table[R, ID]) Ordered() []R {
	return slices.Clone(t.ordered)
}

// ---------------------------------------------------------------------------
// Filtering
// ---------------------------------------------------------------------------

// SetFilters replaces the active filters and free-text search. Filters are
// AND-combined; search matches any rendered cell, ignoring case. Nothing
// changes when a filter is invalid.
func (t *Table[R, ID]) SetFilters(filters []Filter, search string) error {
	for _, f := range filters {
		if err := validateFilter(f, t.columns, t.colIdx); err != nil {
			return err
		}
	}
	t.filters = slices.Clone(filters)
	t.search = strings.TrimSpace(search)
	t.derive()
	return nil
}

// Filters returns the active filters.
func (t *Table[R, ID]) Filters() []Filter {
	return slices.Clone(t.filters)
}

// Search returns the active free-text search.
func (t *Table[R, ID]) Search() string {
	return t.search
}

func (t *Table[R, ID]) matches(r R, query string) bool {
	for _, f := range t.filters {
		col := t.columns[t.colIdx[f.Key]]
		if !matchFilter(col.value(r), f, col.Type, t.locale) {
			return false
		}
	}
	if query == "" {
		return true
	}
	for _, col := range t.columns {
		if strings.Contains(strings.ToLower(col.cell(r, t.locale)), query) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Locale
// ---------------------------------------------------------------------------

// SetLocale changes the render locale. Unsupported locales fall back to
// the default.
func (t *Table[R, ID]) SetLocale(l i18n.Locale) {
	if !l.Valid() {
		l = i18n.Default
	}
	if l == t.locale {
		return
	}
	t.locale = l
	if t.search != "" || len(t.filters) > 0 {
		t.derive()
	}
}

// Locale returns the render locale.
func (t *Table[R, ID]) Locale() i18n.Locale {
	return t.locale
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// OnSelectionChange registers a callback fired after every selection change.
func (t *Table[R, ID]) OnSelectionChange(fn func([]ID)) {
	t.selection.OnChange(fn)
}

// Toggle flips selection of the record with id.
func (t *Table[R, ID]) Toggle(id ID) error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	if _, ok := t.ids[id]; !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, KeyOf(id))
	}
	t.selection.Toggle(id)
	return nil
}

// ToggleKey is Toggle addressed by KeyOf(id).
func (t *Table[R, ID]) ToggleKey(key string) error {
	id, ok := t.keys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, key)
	}
	return t.Toggle(id)
}

// SelectVisible adds every record on the current page to the selection.
func (t *Table[R, ID]) SelectVisible() error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	t.selection.SelectAll(idsOf(t.visible))
	return nil
}

// DeselectVisible removes every record on the current page from the
// selection, keeping selections on other pages.
func (t *Table[R, ID]) DeselectVisible() error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	t.selection.DeselectAll(idsOf(t.visible))
	return nil
}

// SelectFiltered adds every record passing the active filters, across all
// pages, to the selection.
func (t *Table[R, ID]) SelectFiltered() error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	t.selection.SelectAll(idsOf(t.ordered))
	return nil
}

// ClearSelection empties the selection.
func (t *Table[R, ID]) ClearSelection() {
	t.selection.Clear()
}

// IsSelected reports whether the record with id is selected.
func (t *Table[R, ID]) IsSelected(id ID) bool {
	return t.selection.IsSelected(id)
}

// Selected returns the selected ids in selection order.
func (t *Table[R, ID]) Selected() []ID {
	return t.selection.IDs()
}

// SelectedRecords returns the selected records in selection order.
func (t *Table[R, ID]) SelectedRecords() []R {
	ids := t.selection.IDs()
	out := make([]R, 0, len(ids))
	for _, id := range ids {
		if i, ok := t.ids[id]; ok {
			out = append(out, t.records[i])
		}
	}
	return out
}

func idsOf[R Record[ID], ID comparable](records []R) []ID {
	ids := make([]ID, len(records))
	for i, r := range records {
		ids[i] = r.RecordID()
	}
	return ids
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

// Dispatch invokes action name on the record with id and returns the
// callback's error unchanged.
func (t *Table[R, ID]) Dispatch(ctx context.Context, name string, id ID) error {
	ai, ok := t.actIdx[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	ri, ok := t.ids[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, KeyOf(id))
	}
	return t.actions[ai].OnClick(ctx, t.records[ri])
}

// DispatchKey is Dispatch addressed by KeyOf(id).
func (t *Table[R, ID]) DispatchKey(ctx context.Context, name, key string) error {
	id, ok := t.keys[key]
	if !ok {
		if _, known := t.actIdx[name]; !known {
			return fmt.Errorf("%w: %q", ErrUnknownAction, name)
		}
		return fmt.Errorf("%w: %s", ErrRecordNotFound, key)
	}
	return t.Dispatch(ctx, name, id)
}

// ---------------------------------------------------------------------------
// State
// ---------------------------------------------------------------------------

// State returns a snapshot of the user-controlled table state.
func (t *Table[R, ID]) State() State {
	ids := t.selection.IDs()
	var selected []string
	if len(ids) > 0 {
		selected = make([]string, len(ids))
		for i, id := range ids {
			selected[i] = KeyOf(id)
		}
	}
	return State{
		Sort:     t.sort,
		Page:     t.page,
		PerPage:  t.perPage,
		Search:   t.search,
		Filters:  slices.Clone(t.filters),
		Selected: selected,
	}
}

// Restore applies st leniently against the current records: an invalid sort
// falls back to the default sort, invalid filters and unknown selection keys
// are dropped, and the page is clamped.
func (t *Table[R, ID]) Restore(st State) {
	if err := t.checkSort(st.Sort); err == nil {
		if !st.Sort.IsZero() {
			st.Sort.Dir = ParseDirection(string(st.Sort.Dir))
		}
		t.sort = st.Sort
	} else {
		t.sort = t.cfg.DefaultSort
	}

	if st.PerPage > 0 {
		t.perPage = st.PerPage
	}

	t.filters = t.filters[:0:0]
	for _, f := range st.Filters {
		if validateFilter(f, t.columns, t.colIdx) == nil {
			t.filters = append(t.filters, f)
		}
	}
	t.search = strings.TrimSpace(st.Search)
	t.page = st.Page

	if t.cfg.Selectable {
		ids := make([]ID, 0, len(st.Selected))
		for _, key := range st.Selected {
			if id, ok := t.keys[key]; ok {
				ids = append(ids, id)
			}
		}
		t.selection.Set(ids)
	}

	t.derive()
}

// ---------------------------------------------------------------------------
// Derivation
// ---------------------------------------------------------------------------

// derive recomputes filtered, ordered and visible rows.
func (t *Table[R, ID]) derive() {
	t.filtered = t.records
	if len(t.filters) > 0 || t.search != "" {
		query := strings.ToLower(t.search)
		t.filtered = make([]R, 0, len(t.records))
		for _, r := range t.records {
			if t.matches(r, query) {
				t.filtered = append(t.filtered, r)
			}
		}
	}

	t.ordered = t.filtered
	if !t.sort.IsZero() {
		col := t.columns[t.colIdx[t.sort.Key]]
		t.ordered = sortBy(t.filtered, col.value, t.sort.Dir, col.Natural)
	}

	t.paginate()
}

func (t *Table[R, ID]) paginate() {
	perPage := 0
	if t.cfg.Pagination {
		perPage = t.perPage
	}
	t.visible, t.info = Paginate(t.ordered, t.page, perPage)
	t.page = t.info.Page
}
