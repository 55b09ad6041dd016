package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

type note struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
	Done  bool   `json:"done"`
	Due   *Date  `json:"due"`
}

func (n note) RecordID() int64 { return n.ID }

func noteDefinition(key string, portal Portal) Definition[note, int64] {
	cfg := datatable.DefaultConfig()
	cfg.ItemsPerPage = 2

	return Definition[note, int64]{
		Info: ListInfo{
			Key:    key,
			Kind:   "notes",
			Portal: portal,
			Group:  i18n.T("Support", "الدعم"),
			Label:  i18n.T("Notes", "الملاحظات"),
		},
		Columns: []datatable.Column[note]{
			{Key: "title", Header: i18n.T("Title", "العنوان"), Sortable: true},
			{Key: "owner", Header: i18n.T("Owner", "المالك"), Sortable: true, Type: datatable.FieldEnum},
			{Key: "done", Header: i18n.T("Done", "منجز"), Type: datatable.FieldBool},
			{Key: "due", Header: i18n.T("Due", "الاستحقاق"), Sortable: true, Type: datatable.FieldDate},
		},
		Config: cfg,
		Actions: []ActionFactory[note]{
			DeleteAction[note, int64](),
			UpdateAction[note, int64](Update[note]{
				Name:  "complete",
				Label: i18n.T("Mark done", "تعيين كمنجز"),
				Apply: func(n *note) error {
					if n.Done {
						return errors.New("already done")
					}
					n.Done = true
					return nil
				},
			}),
		},
	}
}

func seedNotes(t *testing.T) *MemoryBackend {
	t.Helper()
	docs, err := DecodeFixture([]byte(`
- {id: 1, title: "Restock lamps", owner: S-1, done: false, due: "2024-05-03"}
- {id: 2, title: "Call courier", owner: S-2, done: true, due: "2024-05-01"}
- {id: 3, title: "Answer FAQ", owner: S-1, done: false}
- {id: 4, title: "Approve refund", owner: S-1, done: false, due: "2024-05-02"}
`))
	if err != nil {
		t.Fatalf("DecodeFixture: %v", err)
	}
	b := NewMemoryBackend()
	b.Load("notes", docs)
	return b
}

func registerNotes(t *testing.T, defs ...Definition[note, int64]) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
	for _, def := range defs {
		Register(MustBind(def))
	}
}

func rowKeys(v datatable.View) []string {
	keys := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		keys[i] = r.Key
	}
	return keys
}

func TestService_Page(t *testing.T) {
	registerNotes(t, noteDefinition("notes", PortalAdmin))
	svc := NewService(seedNotes(t))
	ctx := context.Background()

	res, err := svc.Page(ctx, Request{List: "notes", Locale: i18n.English}, Query{SortKey: "due"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	// Undated note 3 sorts last.
	if diff := cmp.Diff([]string{"2", "4"}, rowKeys(res.View)); diff != "" {
		t.Errorf("page 1 (-want +got):\n%s", diff)
	}

	res, err = svc.Page(ctx, Request{List: "notes", State: &res.State, Locale: i18n.English}, Query{Page: 2})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "3"}, rowKeys(res.View)); diff != "" {
		t.Errorf("page 2 (-want +got):\n%s", diff)
	}

	// Same key without a direction toggles to descending.
	res, err = svc.Page(ctx, Request{List: "notes", State: &res.State, Locale: i18n.English}, Query{SortKey: "due"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if res.State.Sort != (datatable.SortState{Key: "due", Dir: datatable.Descending}) {
		t.Errorf("expected due desc, got %+v", res.State.Sort)
	}
	if res.State.Page != 2 {
		t.Errorf("sorting should keep the page, got %d", res.State.Page)
	}
}

func TestService_PageFiltersAndCapsPerPage(t *testing.T) {
	registerNotes(t, noteDefinition("notes", PortalAdmin))
	svc := NewService(seedNotes(t), WithMaxPerPage(3))

	res, err := svc.Page(context.Background(), Request{List: "notes"}, Query{
		PerPage:    50,
		SetFilters: true,
		Filters:    []datatable.Filter{{Key: "owner", Op: datatable.OpEquals, Value: "S-1"}},
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if res.State.PerPage != 3 {
		t.Errorf("expected per page capped at 3, got %d", res.State.PerPage)
	}
	if diff := cmp.Diff([]string{"1", "3", "4"}, rowKeys(res.View)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestService_Errors(t *testing.T) {
	registerNotes(t, noteDefinition("notes", PortalAdmin))
	svc := NewService(seedNotes(t))
	ctx := context.Background()

	if _, err := svc.Page(ctx, Request{List: "missing"}, Query{}); !errors.Is(err, ErrUnknownList) {
		t.Errorf("expected ErrUnknownList, got %v", err)
	}
	if _, err := svc.Page(ctx, Request{List: "notes"}, Query{SortKey: "done"}); !errors.Is(err, datatable.ErrColumnNotSortable) {
		t.Errorf("expected ErrColumnNotSortable, got %v", err)
	}
	if _, err := svc.SelectAll(ctx, Request{List: "notes"}, Scope("everything")); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("expected ErrInvalidScope, got %v", err)
	}
}

func TestService_Selection(t *testing.T) {
	registerNotes(t, noteDefinition("notes", PortalAdmin))
	svc := NewService(seedNotes(t))
	ctx := context.Background()

	res, err := svc.SelectAll(ctx, Request{List: "notes"}, ScopePage)
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	res, err = svc.Toggle(ctx, Request{List: "notes", State: &res.State}, "3")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, res.State.Selected); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if res.View.SelectedCount != 3 {
		t.Errorf("expected 3 selected in view, got %d", res.View.SelectedCount)
	}

	res, err = svc.DeselectPage(ctx, Request{List: "notes", State: &res.State})
	if err != nil {
		t.Fatalf("DeselectPage: %v", err)
	}
	if diff := cmp.Diff([]string{"3"}, res.State.Selected); diff != "" {
		t.Errorf("after deselect page (-want +got):\n%s", diff)
	}

	res, err = svc.SelectAll(ctx, Request{List: "notes", State: &res.State}, ScopeAll)
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if got := len(res.State.Selected); got != 4 {
		t.Errorf("expected 4 selected, got %d", got)
	}

	res, err = svc.ClearSelection(ctx, Request{List: "notes", State: &res.State})
	if err != nil {
		t.Fatalf("ClearSelection: %v", err)
	}
	if len(res.State.Selected) != 0 {
		t.Errorf("expected empty selection, got %v", res.State.Selected)
	}
}

func TestService_DispatchDelete(t *testing.T) {
	registerNotes(t, noteDefinition("notes", PortalAdmin))
	backend := seedNotes(t)
	svc := NewService(backend)
	ctx := context.Background()

	res, err := svc.Toggle(ctx, Request{List: "notes"}, "1")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	res, err = svc.Dispatch(ctx, Request{List: "notes", State: &res.State}, "delete", "1")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if diff := cmp.Diff([]string{"2", "3"}, rowKeys(res.View)); diff != "" {
		t.Errorf("rows after delete (-want +got):\n%s", diff)
	}
	if len(res.State.Selected) != 0 {
		t.Errorf("deleted record still selected: %v", res.State.Selected)
	}

	docs, _ := backend.List(ctx, "notes")
	if len(docs) != 3 {
		t.Errorf("expected 3 stored notes, got %d", len(docs))
	}

	if _, err := svc.Dispatch(ctx, Request{List: "notes"}, "delete", "1"); !errors.Is(err, datatable.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for deleted row, got %v", err)
	}
}

func TestService_DispatchUpdate(t *testing.T) {
	registerNotes(t, noteDefinition("notes", PortalAdmin))
	backend := seedNotes(t)
	svc := NewService(backend)
	ctx := context.Background()

	if _, err := svc.Dispatch(ctx, Request{List: "notes"}, "complete", "4"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	docs, _ := backend.List(ctx, "notes")
	var got note
	if err := json.Unmarshal(docs[3].Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Done || got.Title != "Approve refund" || got.Due.String() != "2024-05-02" {
		t.Errorf("unexpected stored note %+v", got)
	}

	// Callback errors come back unchanged.
	_, err := svc.Dispatch(ctx, Request{List: "notes"}, "complete", "4")
	if err == nil || err.Error() != "already done" {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestService_WhereUsesPortalAccount(t *testing.T) {
	def := noteDefinition("my_notes", PortalSeller)
	def.Where = func(ctx context.Context, n note) bool {
		return n.Owner == GetAccountFromContext(ctx)
	}
	registerNotes(t, def)

	svc := NewService(seedNotes(t), WithAccount(PortalSeller, "S-2"))
	res, err := svc.Page(context.Background(), Request{List: "my_notes"}, Query{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if diff := cmp.Diff([]string{"2"}, rowKeys(res.View)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestService_Export(t *testing.T) {
	registerNotes(t, noteDefinition("notes", PortalAdmin))
	svc := NewService(seedNotes(t))

	st := datatable.State{
		Sort:    datatable.SortState{Key: "title", Dir: datatable.Ascending},
		Page:    1,
		PerPage: 2,
		Filters: []datatable.Filter{{Key: "done", Op: datatable.OpEquals, Value: "false"}},
	}

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), Request{List: "notes", State: &st, Locale: i18n.Arabic}, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := strings.Join([]string{
		"العنوان,المالك,منجز,الاستحقاق",
		"Answer FAQ,S-1,لا,",
		"Approve refund,S-1,لا,2024-05-02",
		"Restock lamps,S-1,لا,2024-05-03",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestService_Lists(t *testing.T) {
	registerNotes(t,
		noteDefinition("notes", PortalAdmin),
		noteDefinition("my_notes", PortalSeller),
	)
	svc := NewService(NewMemoryBackend())

	var keys []string
	for _, info := range svc.ListLists() {
		keys = append(keys, info.Key)
	}
	if diff := cmp.Diff([]string{"notes", "my_notes"}, keys); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if got := svc.ListsByPortal(PortalSeller); len(got) != 1 || got[0].Key != "my_notes" {
		t.Errorf("unexpected seller lists %+v", got)
	}

	if _, err := svc.Info("nope"); !errors.Is(err, ErrUnknownList) {
		t.Errorf("expected ErrUnknownList, got %v", err)
	}
}
