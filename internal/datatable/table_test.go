package datatable

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

type product struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	SKU     string          `table:"sku"`
	Price   decimal.Decimal `json:"price"`
	Stock   *int            `json:"stock"`
	Active  bool            `json:"active"`
	Added   time.Time       `json:"added"`
	Hidden  string          `json:"-"`
	private string
}

func (p product) RecordID() int { return p.ID }

var _ Grid = (*Table[product, int])(nil)

func intPtr(n int) *int { return &n }

func productColumns() []Column[product] {
	return []Column[product]{
		{Key: "name", Header: i18n.T("Name", "الاسم"), Sortable: true},
		{Key: "sku", Header: i18n.T("SKU", "رمز المنتج"), Sortable: true, Natural: true},
		{Key: "price", Header: i18n.T("Price", "السعر"), Sortable: true, Type: FieldNumeric},
		{Key: "stock", Header: i18n.T("Stock", "المخزون"), Sortable: true, Type: FieldNumeric},
		{Key: "active", Header: i18n.T("Active", "نشط"), Type: FieldBool},
		{Key: "added", Header: i18n.T("Added", "أضيف"), Sortable: true, Type: FieldDate},
	}
}

func sampleProducts() []product {
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }
	return []product{
		{ID: 1, Name: "Lamp", SKU: "item10", Price: decimal.RequireFromString("25.00"), Stock: intPtr(4), Active: true, Added: day(3)},
		{ID: 2, Name: "Chair", SKU: "item2", Price: decimal.RequireFromString("120.50"), Stock: nil, Active: false, Added: day(1)},
		{ID: 3, Name: "Desk", SKU: "item1", Price: decimal.RequireFromString("310.00"), Stock: intPtr(0), Active: true, Added: day(2)},
		{ID: 4, Name: "Rug", SKU: "item3", Price: decimal.RequireFromString("89.99"), Stock: intPtr(12), Active: true, Added: day(5)},
		{ID: 5, Name: "Shelf", SKU: "item20", Price: decimal.RequireFromString("45.00"), Stock: intPtr(7), Active: false, Added: day(4)},
	}
}

func newProductTable(t *testing.T, cfg Config, actions ...Action[product]) *Table[product, int] {
	t.Helper()
	tbl, err := New[product, int](sampleProducts(), productColumns(), cfg, actions...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

func ids(records []product) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// ============================================================================
// Construction
// ============================================================================

func TestNew_Validation(t *testing.T) {
	noop := func(context.Context, product) error { return nil }

	tests := []struct {
		name    string
		columns []Column[product]
		cfg     Config
		actions []Action[product]
		wantErr error
	}{
		{
			name:    "no columns",
			cfg:     DefaultConfig(),
			wantErr: ErrInvalidColumn,
		},
		{
			name:    "empty key",
			columns: []Column[product]{{Key: " "}},
			cfg:     DefaultConfig(),
			wantErr: ErrInvalidColumn,
		},
		{
			name:    "duplicate key",
			columns: []Column[product]{{Key: "name"}, {Key: "name"}},
			cfg:     DefaultConfig(),
			wantErr: ErrInvalidColumn,
		},
		{
			name:    "sortable column without field",
			columns: []Column[product]{{Key: "nope", Sortable: true}},
			cfg:     DefaultConfig(),
			wantErr: ErrInvalidColumn,
		},
		{
			name:    "json dash is not resolvable",
			columns: []Column[product]{{Key: "-"}},
			cfg:     DefaultConfig(),
			wantErr: ErrInvalidColumn,
		},
		{
			name:    "unexported field is not resolvable",
			columns: []Column[product]{{Key: "private"}},
			cfg:     DefaultConfig(),
			wantErr: ErrInvalidColumn,
		},
		{
			name:    "zero items per page",
			columns: productColumns(),
			cfg:     Config{Pagination: true},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "default sort on unknown column",
			columns: productColumns(),
			cfg:     Config{Pagination: true, ItemsPerPage: 5, DefaultSort: SortState{Key: "missing"}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "default sort on unsortable column",
			columns: productColumns(),
			cfg:     Config{Pagination: true, ItemsPerPage: 5, DefaultSort: SortState{Key: "active"}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "action without callback",
			columns: productColumns(),
			cfg:     DefaultConfig(),
			actions: []Action[product]{{Name: "delete"}},
			wantErr: ErrInvalidAction,
		},
		{
			name:    "duplicate action",
			columns: productColumns(),
			cfg:     DefaultConfig(),
			actions: []Action[product]{{Name: "delete", OnClick: noop}, {Name: "delete", OnClick: noop}},
			wantErr: ErrInvalidAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[product, int](sampleProducts(), tt.columns, tt.cfg, tt.actions...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNew_RenderOnlyColumn(t *testing.T) {
	cols := []Column[product]{
		{Key: "label", Render: func(p product, _ i18n.Locale) string { return "#" + p.Name }},
	}
	tbl, err := New[product, int](sampleProducts(), cols, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := tbl.View().Rows[0].Cells[0]; got != "#Lamp" {
		t.Errorf("expected #Lamp, got %q", got)
	}
}

func TestNew_DuplicateRecordIDs(t *testing.T) {
	records := []product{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}
	_, err := New[product, int](records, productColumns(), DefaultConfig())
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Errorf("expected ErrDuplicateRecord, got %v", err)
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	records := sampleProducts()
	tbl, err := New[product, int](records, productColumns(), DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.SortBy("name"); err != nil {
		t.Fatalf("SortBy: %v", err)
	}

	records[0].Name = "changed"
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, ids(records)); diff != "" {
		t.Errorf("input reordered (-want +got):\n%s", diff)
	}
	for _, p := range tbl.Ordered() {
		if p.Name == "changed" {
			t.Error("table shares storage with caller slice")
		}
	}
}

// ============================================================================
// Sorting
// ============================================================================

func TestTable_SortBy_TogglesDirection(t *testing.T) {
	tbl := newProductTable(t, DefaultConfig())

	if err := tbl.SortBy("name"); err != nil {
		t.Fatalf("SortBy: %v", err)
	}
	if diff := cmp.Diff([]int{2, 3, 1, 4, 5}, ids(tbl.Ordered())); diff != "" {
		t.Errorf("ascending (-want +got):\n%s", diff)
	}

	if err := tbl.SortBy("name"); err != nil {
		t.Fatalf("SortBy: %v", err)
	}
	if got := tbl.Sort(); got != (SortState{Key: "name", Dir: Descending}) {
		t.Errorf("expected name desc, got %+v", got)
	}
	if diff := cmp.Diff([]int{5, 4, 1, 3, 2}, ids(tbl.Ordered())); diff != "" {
		t.Errorf("descending (-want +got):\n%s", diff)
	}

	if err := tbl.SortBy("price"); err != nil {
		t.Fatalf("SortBy: %v", err)
	}
	if got := tbl.Sort(); got != (SortState{Key: "price", Dir: Ascending}) {
		t.Errorf("new key should sort ascending, got %+v", got)
	}
}

func TestTable_SortBy_Errors(t *testing.T) {
	tbl := newProductTable(t, DefaultConfig())

	if err := tbl.SortBy("active"); !errors.Is(err, ErrColumnNotSortable) {
		t.Errorf("expected ErrColumnNotSortable, got %v", err)
	}
	if err := tbl.SortBy("missing"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if !tbl.Sort().IsZero() {
		t.Errorf("failed sort changed state: %+v", tbl.Sort())
	}
}

func TestTable_NaturalAndMissing(t *testing.T) {
	tbl := newProductTable(t, DefaultConfig())

	if err := tbl.SetSort(SortState{Key: "sku"}); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	// item1, item2, item3, item10, item20
	if diff := cmp.Diff([]int{3, 2, 4, 1, 5}, ids(tbl.Ordered())); diff != "" {
		t.Errorf("natural order (-want +got):\n%s", diff)
	}

	// Chair has no stock and stays last in both directions.
	if err := tbl.SetSort(SortState{Key: "stock", Dir: Ascending}); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	if diff := cmp.Diff([]int{3, 1, 5, 4, 2}, ids(tbl.Ordered())); diff != "" {
		t.Errorf("stock asc (-want +got):\n%s", diff)
	}
	if err := tbl.SetSort(SortState{Key: "stock", Dir: Descending}); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	if diff := cmp.Diff([]int{4, 5, 1, 3, 2}, ids(tbl.Ordered())); diff != "" {
		t.Errorf("stock desc (-want +got):\n%s", diff)
	}
}

func TestTable_ClearSortRestoresInputOrder(t *testing.T) {
	tbl := newProductTable(t, DefaultConfig())
	_ = tbl.SortBy("price")
	if err := tbl.SetSort(SortState{}); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, ids(tbl.Ordered())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// ============================================================================
// Pagination
// ============================================================================

func TestTable_Pagination(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ItemsPerPage = 2
	tbl := newProductTable(t, cfg)

	if got := tbl.PageInfo(); got != (PageInfo{Page: 1, PerPage: 2, TotalItems: 5, TotalPages: 3}) {
		t.Errorf("unexpected page info %+v", got)
	}

	tbl.SetPage(99)
	if got := tbl.PageInfo().Page; got != 3 {
		t.Errorf("expected clamp to 3, got %d", got)
	}
	if diff := cmp.Diff([]int{5}, ids(tbl.Visible())); diff != "" {
		t.Errorf("last page (-want +got):\n%s", diff)
	}

	// Growing the page size re-clamps.
	if err := tbl.SetItemsPerPage(4); err != nil {
		t.Fatalf("SetItemsPerPage: %v", err)
	}
	if got := tbl.PageInfo().Page; got != 2 {
		t.Errorf("expected page 2 after resize, got %d", got)
	}

	// Shrinking the input re-clamps.
	if err := tbl.SetRecords(sampleProducts()[:3]); err != nil {
		t.Fatalf("SetRecords: %v", err)
	}
	if got := tbl.PageInfo().Page; got != 1 {
		t.Errorf("expected page 1 after shrink, got %d", got)
	}

	if err := tbl.SetItemsPerPage(0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestTable_PaginationDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pagination = false
	cfg.ItemsPerPage = 0
	tbl := newProductTable(t, cfg)

	if got := len(tbl.Visible()); got != 5 {
		t.Errorf("expected all 5 rows, got %d", got)
	}
	tbl.SetPage(3)
	if got := tbl.PageInfo().Page; got != 1 {
		t.Errorf("expected single page, got %d", got)
	}
}

// ============================================================================
// Filtering
// ============================================================================

func TestTable_SetFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		search  string
		want    []int
	}{
		{"none", nil, "", []int{1, 2, 3, 4, 5}},
		{"text contains", []Filter{{Key: "name", Op: OpContains, Value: "e"}}, "", []int{3, 5}},
		{"text starts ignores case", []Filter{{Key: "name", Op: OpStartsWith, Value: "d"}}, "", []int{3}},
		{"numeric gte", []Filter{{Key: "price", Op: OpGreaterEq, Value: "89.99"}}, "", []int{2, 3, 4}},
		{"numeric on pointer skips missing", []Filter{{Key: "stock", Op: OpLess, Value: "5"}}, "", []int{1, 3}},
		{"bool", []Filter{{Key: "active", Op: OpEquals, Value: "false"}}, "", []int{2, 5}},
		{"date lte", []Filter{{Key: "added", Op: OpLessEq, Value: "2024-03-02"}}, "", []int{2, 3}},
		{"and combined", []Filter{
			{Key: "active", Op: OpEquals, Value: "yes"},
			{Key: "price", Op: OpLess, Value: "100"},
		}, "", []int{1, 4}},
		{"search rendered cells", nil, "ITEM2", []int{2, 5}},
		{"search with filter", []Filter{{Key: "active", Op: OpEquals, Value: "true"}}, "rug", []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newProductTable(t, DefaultConfig())
			if err := tbl.SetFilters(tt.filters, tt.search); err != nil {
				t.Fatalf("SetFilters: %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(tbl.Ordered())); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestTable_SetFilters_Invalid(t *testing.T) {
	tbl := newProductTable(t, DefaultConfig())
	_ = tbl.SetFilters([]Filter{{Key: "name", Op: OpContains, Value: "a"}}, "")

	bad := [][]Filter{
		{{Key: "missing", Op: OpEquals, Value: "x"}},
		{{Key: "name", Op: OpGreater, Value: "x"}},
		{{Key: "active", Op: OpContains, Value: "x"}},
		{{Key: "name", Op: OpEquals, Value: "  "}},
	}
	for _, filters := range bad {
		if err := tbl.SetFilters(filters, ""); !errors.Is(err, ErrInvalidFilter) {
			t.Errorf("%+v: expected ErrInvalidFilter, got %v", filters, err)
		}
	}

	if diff := cmp.Diff([]Filter{{Key: "name", Op: OpContains, Value: "a"}}, tbl.Filters()); diff != "" {
		t.Errorf("rejected filters changed state (-want +got):\n%s", diff)
	}
}

func TestTable_FilterReclampsPage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ItemsPerPage = 2
	tbl := newProductTable(t, cfg)
	tbl.SetPage(3)

	if err := tbl.SetFilters([]Filter{{Key: "active", Op: OpEquals, Value: "true"}}, ""); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	if got := tbl.PageInfo(); got.Page != 2 || got.TotalPages != 2 {
		t.Errorf("expected page 2 of 2, got %+v", got)
	}
}

// ============================================================================
// Selection
// ============================================================================

func TestTable_SelectionAcrossPages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ItemsPerPage = 2
	tbl := newProductTable(t, cfg)

	var notified [][]int
	tbl.OnSelectionChange(func(ids []int) { notified = append(notified, ids) })

	if err := tbl.SelectVisible(); err != nil {
		t.Fatalf("SelectVisible: %v", err)
	}
	tbl.SetPage(2)
	if err := tbl.Toggle(3); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if diff := cmp.Diff([]int{1, 2, 3}, tbl.Selected()); diff != "" {
		t.Errorf("selection (-want +got):\n%s", diff)
	}
	if got := len(notified); got != 2 {
		t.Errorf("expected 2 notifications, got %d", got)
	}

	if err := tbl.DeselectVisible(); err != nil {
		t.Fatalf("DeselectVisible: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, tbl.Selected()); diff != "" {
		t.Errorf("after deselect page (-want +got):\n%s", diff)
	}

	if err := tbl.SelectFiltered(); err != nil {
		t.Fatalf("SelectFiltered: %v", err)
	}
	if got := len(tbl.Selected()); got != 5 {
		t.Errorf("expected all 5 selected, got %d", got)
	}

	tbl.ClearSelection()
	if got := len(tbl.Selected()); got != 0 {
		t.Errorf("expected empty selection, got %d", got)
	}
}

func TestTable_ToggleKey(t *testing.T) {
	tbl := newProductTable(t, DefaultConfig())

	if err := tbl.ToggleKey("4"); err != nil {
		t.Fatalf("ToggleKey: %v", err)
	}
	if !tbl.IsSelected(4) {
		t.Error("expected 4 selected")
	}
	if err := tbl.ToggleKey("404"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
	if err := tbl.Toggle(404); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestTable_SelectionDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selectable = false
	tbl := newProductTable(t, cfg)

	if err := tbl.Toggle(1); !errors.Is(err, ErrSelectionDisabled) {
		t.Errorf("expected ErrSelectionDisabled, got %v", err)
	}
	if err := tbl.SelectVisible(); !errors.Is(err, ErrSelectionDisabled) {
		t.Errorf("expected ErrSelectionDisabled, got %v", err)
	}
}

func TestTable_SetRecordsPrunesSelection(t *testing.T) {
	tbl := newProductTable(t, DefaultConfig())
	_ = tbl.Toggle(1)
	_ = tbl.Toggle(5)

	if err := tbl.SetRecords(sampleProducts()[:3]); err != nil {
		t.Fatalf("SetRecords: %v", err)
	}
	if diff := cmp.Diff([]int{1}, tbl.Selected()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := ids(tbl.SelectedRecords()); len(got) != 1 || got[0] != 1 {
		t.Errorf("expected record 1, got %v", got)
	}
}

// ============================================================================
// Actions
// ============================================================================

func TestTable_Dispatch(t *testing.T) {
	errBoom := errors.New("boom")
	var got product

	actions := []Action[product]{
		{
			Name:  "edit",
			Label: i18n.T("Edit", "تعديل"),
			OnClick: func(_ context.Context, p product) error {
				got = p
				return nil
			},
		},
		{
			Name:    "fail",
			OnClick: func(context.Context, product) error { return errBoom },
		},
	}
	tbl := newProductTable(t, DefaultConfig(), actions...)

	if err := tbl.DispatchKey(context.Background(), "edit", "3"); err != nil {
		t.Fatalf("DispatchKey: %v", err)
	}
	if got.Name != "Desk" {
		t.Errorf("callback got %+v, want full Desk record", got)
	}

	if err := tbl.Dispatch(context.Background(), "fail", 1); err != errBoom {
		t.Errorf("expected callback error unchanged, got %v", err)
	}
	if err := tbl.Dispatch(context.Background(), "nope", 1); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
	if err := tbl.DispatchKey(context.Background(), "edit", "99"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

// ============================================================================
// State
// ============================================================================

func TestTable_StateRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ItemsPerPage = 2
	src := newProductTable(t, cfg)
	_ = src.SortBy("price")
	_ = src.SortBy("price")
	_ = src.SetFilters([]Filter{{Key: "active", Op: OpEquals, Value: "true"}}, "")
	src.SetPage(2)
	_ = src.Toggle(4)

	st := src.State()

	dst := newProductTable(t, cfg)
	dst.Restore(st)

	if diff := cmp.Diff(st, dst.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ids(src.Visible()), ids(dst.Visible())); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_RestoreIsLenient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultSort = SortState{Key: "name", Dir: Ascending}
	tbl := newProductTable(t, cfg)

	tbl.Restore(State{
		Sort:     SortState{Key: "active", Dir: Descending},
		Page:     -4,
		PerPage:  3,
		Filters:  []Filter{{Key: "ghost", Op: OpEquals, Value: "x"}, {Key: "name", Op: OpContains, Value: "a"}},
		Selected: []string{"2", "999"},
	})

	st := tbl.State()
	want := State{
		Sort:     SortState{Key: "name", Dir: Ascending},
		Page:     1,
		PerPage:  3,
		Filters:  []Filter{{Key: "name", Op: OpContains, Value: "a"}},
		Selected: []string{"2"},
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// ============================================================================
// View and export
// ============================================================================

func TestTable_View(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ItemsPerPage = 2
	cfg.Locale = i18n.Arabic
	tbl := newProductTable(t, cfg, Action[product]{
		Name:    "delete",
		Label:   i18n.T("Delete", "حذف"),
		Color:   "danger",
		Confirm: i18n.T("Delete this product?", "حذف هذا المنتج؟"),
		OnClick: func(context.Context, product) error { return nil },
	})
	_ = tbl.SortBy("price")
	_ = tbl.SelectVisible()

	v := tbl.View()

	if v.Dir != "rtl" {
		t.Errorf("expected rtl, got %q", v.Dir)
	}
	if v.Columns[0].Label != "الاسم" {
		t.Errorf("expected Arabic header, got %q", v.Columns[0].Label)
	}
	if !v.Columns[2].Sorted || v.Columns[2].Dir != Ascending {
		t.Errorf("price header not marked sorted: %+v", v.Columns[2])
	}
	if !v.PageSelected || v.SelectedCount != 2 {
		t.Errorf("expected full page selected, got PageSelected=%v count=%d", v.PageSelected, v.SelectedCount)
	}

	want := []RowView{
		{Key: "1", Cells: []string{"Lamp", "item10", "25.00", "4", "نعم", "2024-03-03"}, Selected: true},
		{Key: "5", Cells: []string{"Shelf", "item20", "45.00", "7", "لا", "2024-03-04"}, Selected: true},
	}
	if diff := cmp.Diff(want, v.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if len(v.Actions) != 1 || v.Actions[0].Label != "حذف" || v.Actions[0].Confirm != "حذف هذا المنتج؟" {
		t.Errorf("unexpected actions %+v", v.Actions)
	}
}

func TestTable_WriteCSV(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ItemsPerPage = 1
	tbl := newProductTable(t, cfg)
	_ = tbl.SetFilters([]Filter{{Key: "active", Op: OpEquals, Value: "false"}}, "")

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := strings.Join([]string{
		"Name,SKU,Price,Stock,Active,Added",
		"Chair,item2,120.50,,No,2024-03-01",
		"Shelf,item20,45.00,7,No,2024-03-04",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv (-want +got):\n%s", diff)
	}
}

func TestHeaderView_NextDir(t *testing.T) {
	tests := []struct {
		name string
		col  HeaderView
		want Direction
	}{
		{"unsorted", HeaderView{Key: "name"}, Ascending},
		{"sorted ascending", HeaderView{Key: "name", Sorted: true, Dir: Ascending}, Descending},
		{"sorted descending", HeaderView{Key: "name", Sorted: true, Dir: Descending}, Ascending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.col.NextDir(); got != tt.want {
				t.Errorf("NextDir() = %s, want %s", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Scenario
// ============================================================================

type letter struct {
	ID    int
	Value string
}

func (l letter) RecordID() int { return l.ID }

func TestScenario_SortThenPaginate(t *testing.T) {
	records := []letter{{1, "B"}, {2, "A"}, {3, "A"}}
	cfg := DefaultConfig()
	cfg.ItemsPerPage = 2

	tbl, err := New[letter, int](records, []Column[letter]{
		{Key: "value", Header: i18n.T("Value", "القيمة"), Sortable: true},
	}, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := tbl.SortBy("value"); err != nil {
		t.Fatalf("SortBy: %v", err)
	}

	visible := func() []int {
		var out []int
		for _, r := range tbl.Visible() {
			out = append(out, r.ID)
		}
		return out
	}

	if diff := cmp.Diff([]int{2, 3}, visible()); diff != "" {
		t.Errorf("page 1 (-want +got):\n%s", diff)
	}
	tbl.SetPage(2)
	if diff := cmp.Diff([]int{1}, visible()); diff != "" {
		t.Errorf("page 2 (-want +got):\n%s", diff)
	}
}
