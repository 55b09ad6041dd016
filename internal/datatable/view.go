package datatable

import "github.com/JonMunkholm/storefront/internal/i18n"

// View is a rendered, non-generic snapshot of a table's current page.
type View struct {
	Locale        i18n.Locale  `json:"locale"`
	Dir           string       `json:"dir"`
	MinWidth      string       `json:"minWidth,omitempty"`
	Selectable    bool         `json:"selectable"`
	Pagination    bool         `json:"pagination"`
	Columns       []HeaderView `json:"columns"`
	Rows          []RowView    `json:"rows"`
	Actions       []ActionView `json:"actions,omitempty"`
	Page          PageInfo     `json:"page"`
	Sort          SortState    `json:"sort"`
	Search        string       `json:"search,omitempty"`
	Filters       []Filter     `json:"filters,omitempty"`
	SelectedCount int          `json:"selectedCount"`
	PageSelected  bool         `json:"pageSelected"`
}

// HeaderView describes one column header.
type HeaderView struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Type      string     `json:"type"`
	Sortable  bool       `json:"sortable"`
	Sorted    bool       `json:"sorted"`
	Dir       Direction  `json:"dir,omitempty"`
	Operators []Operator `json:"operators,omitempty"`
	MinWidth  string     `json:"minWidth,omitempty"`
}

// NextDir is the direction a click on the header sorts by: the flipped
// direction on the sorted column, ascending on any other.
func (c HeaderView) NextDir() Direction {
	if c.Sorted {
		return c.Dir.Flip()
	}
	return Ascending
}

// RowView is one rendered row. Cells follow the column order.
type RowView struct {
	Key      string   `json:"key"`
	Cells    []string `json:"cells"`
	Selected bool     `json:"selected"`
}

// ActionView is a localized row action control.
type ActionView struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Icon    string `json:"icon,omitempty"`
	Color   string `json:"color,omitempty"`
	Confirm string `json:"confirm,omitempty"`
}

// View renders the current page in the table's locale.
func (t *Table[R, ID]) View() View {
	l := t.locale

	headers := make([]HeaderView, len(t.columns))
	for i, col := range t.columns {
		h := HeaderView{
			Key:      col.Key,
			Label:    col.Header.In(l),
			Type:     col.Type.String(),
			Sortable: col.Sortable,
			MinWidth: col.MinWidth,
		}
		if col.Key == t.sort.Key {
			h.Sorted = true
			h.Dir = t.sort.Dir
		}
		if col.value != nil {
			h.Operators = Operators(col.Type)
		}
		headers[i] = h
	}

	rows := make([]RowView, len(t.visible))
	pageSelected := len(t.visible) > 0
	for i, r := range t.visible {
		id := r.RecordID()
		cells := make([]string, len(t.columns))
		for j, col := range t.columns {
			cells[j] = col.cell(r, l)
		}
		selected := t.selection.IsSelected(id)
		pageSelected = pageSelected && selected
		rows[i] = RowView{Key: KeyOf(id), Cells: cells, Selected: selected}
	}

	var actions []ActionView
	for _, a := range t.actions {
		actions = append(actions, ActionView{
			Name:    a.Name,
			Label:   a.Label.In(l),
			Icon:    a.Icon,
			Color:   a.Color,
			Confirm: a.Confirm.In(l),
		})
	}

	return View{
		Locale:        l,
		Dir:           l.Dir(),
		MinWidth:      t.cfg.MinWidth,
		Selectable:    t.cfg.Selectable,
		Pagination:    t.cfg.Pagination,
		Columns:       headers,
		Rows:          rows,
		Actions:       actions,
		Page:          t.info,
		Sort:          t.sort,
		Search:        t.search,
		Filters:       t.Filters(),
		SelectedCount: t.selection.Len(),
		PageSelected:  pageSelected,
	}
}
