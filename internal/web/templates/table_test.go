package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func tagsTable(perPage int) TableData {
	return TableData{
		Title:   "Tags",
		PageURL: "/admin/tags",
		APIURL:  "/api/lists/tags",
		View: datatable.View{
			Locale:     i18n.English,
			Dir:        "ltr",
			Pagination: true,
			Columns: []datatable.HeaderView{
				{Key: "name", Label: "Name", Sortable: true, Sorted: true, Dir: datatable.Ascending},
				{Key: "products", Label: "Products", Sortable: true},
			},
			Rows: []datatable.RowView{{Key: "1", Cells: []string{"Sale", "4"}}},
			Page: datatable.PageInfo{Page: 1, PerPage: perPage, TotalItems: 1, TotalPages: 1},
		},
	}
}

// =============================================================================
// Pagination
// =============================================================================

func TestPageSizeOptions(t *testing.T) {
	tests := []struct {
		current int
		want    []int
	}{
		{current: 0, want: []int{10, 25, 50, 100}},
		{current: 25, want: []int{10, 25, 50, 100}},
		{current: 15, want: []int{10, 15, 25, 50, 100}},
		{current: 500, want: []int{10, 25, 50, 100, 500}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, pageSizeOptions(tt.current)); diff != "" {
			t.Errorf("pageSizeOptions(%d) (-want +got):\n%s", tt.current, diff)
		}
	}
	if diff := cmp.Diff([]int{10, 25, 50, 100}, PageSizes); diff != "" {
		t.Errorf("PageSizes modified (-want +got):\n%s", diff)
	}
}

func TestTable_PerPageSelectShowsCurrentSize(t *testing.T) {
	body := render(t, Table(tagsTable(15)))

	if !strings.Contains(body, `<option value="15" selected>`) {
		t.Errorf("per-page select should offer and select 15:\n%s", body)
	}
	if strings.Count(body, " selected>") != 1 {
		t.Errorf("exactly one per-page option should be selected:\n%s", body)
	}
}

// =============================================================================
// Headers
// =============================================================================

func TestTable_HeaderLinksCarryDirection(t *testing.T) {
	body := render(t, Table(tagsTable(10)))

	for _, want := range []string{
		`href="/admin/tags?dir=desc&amp;sort=name"`,
		`href="/admin/tags?dir=asc&amp;sort=products"`,
		`aria-sort="ascending"`,
		`<span class="sort">&#9650;</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("table missing %s", want)
		}
	}
}

func TestLayout_WrapsBody(t *testing.T) {
	page := Page{
		Locale:  i18n.Arabic,
		Title:   "Tags",
		Path:    "/admin/tags",
		Portals: []PortalLink{{Label: "Admin", URL: "/admin", Active: true}},
	}
	body := render(t, Layout(page, Table(tagsTable(10))))

	for _, want := range []string{
		`<!doctype html><html lang="ar" dir="rtl">`,
		`<a href="/admin" class="active" aria-current="page">Admin</a>`,
		`href="/admin/tags?lang=en"`,
		`<main><section id="table"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("layout missing %s:\n%s", want, body)
		}
	}
}
