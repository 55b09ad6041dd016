package datatable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPaginate_ConcatenatedPagesReconstructInput(t *testing.T) {
	for total := 0; total <= 23; total++ {
		items := make([]int, total)
		for i := range items {
			items[i] = i
		}

		for perPage := 1; perPage <= 7; perPage++ {
			var got []int
			pages := TotalPages(total, perPage)
			for p := 1; p <= pages; p++ {
				page, info := Paginate(items, p, perPage)
				if len(page) > perPage {
					t.Fatalf("total=%d perPage=%d page=%d: %d items exceeds page size", total, perPage, p, len(page))
				}
				if info.Page != p {
					t.Fatalf("total=%d perPage=%d: expected page %d, got %d", total, perPage, p, info.Page)
				}
				got = append(got, page...)
			}
			if diff := cmp.Diff(items, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("total=%d perPage=%d (-want +got):\n%s", total, perPage, diff)
			}
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name             string
		page, total, per int
		want             int
	}{
		{"zero page", 0, 10, 3, 1},
		{"negative page", -5, 10, 3, 1},
		{"in range", 2, 10, 3, 2},
		{"last page", 4, 10, 3, 4},
		{"beyond end", 9, 10, 3, 4},
		{"empty input", 3, 0, 3, 1},
		{"unpaginated", 3, 10, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPage(tt.page, tt.total, tt.per); got != tt.want {
				t.Errorf("ClampPage(%d, %d, %d) = %d, want %d", tt.page, tt.total, tt.per, got, tt.want)
			}
		})
	}
}

func TestPaginate_ClampsAnyInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	for page := -3; page <= 8; page++ {
		_, info := Paginate(items, page, 2)
		if info.Page < 1 || info.Page > info.TotalPages {
			t.Errorf("page %d resolved to %d outside [1, %d]", page, info.Page, info.TotalPages)
		}
	}
}

func TestPaginate_Unpaginated(t *testing.T) {
	items := []int{1, 2, 3}
	page, info := Paginate(items, 5, 0)

	if diff := cmp.Diff(items, page); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if info != (PageInfo{Page: 1, PerPage: 3, TotalItems: 3, TotalPages: 1}) {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestPageInfo_Bounds(t *testing.T) {
	_, info := Paginate([]int{1, 2, 3, 4, 5}, 3, 2)

	if info.From() != 5 || info.To() != 5 {
		t.Errorf("expected 5-5, got %d-%d", info.From(), info.To())
	}
	if !info.HasPrev() || info.HasNext() {
		t.Errorf("expected prev only, got prev=%v next=%v", info.HasPrev(), info.HasNext())
	}

	var empty PageInfo
	if empty.From() != 0 || empty.To() != 0 {
		t.Errorf("expected 0-0 for empty, got %d-%d", empty.From(), empty.To())
	}
}

func TestPaginate_CappedCapacity(t *testing.T) {
	items := []int{1, 2, 3, 4}
	page, _ := Paginate(items, 1, 2)
	page = append(page, 99)

	if items[2] != 3 {
		t.Errorf("append through page overwrote input: %v", items)
	}
	_ = page
}
