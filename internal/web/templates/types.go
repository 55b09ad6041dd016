// Package templates renders the storefront pages as templ components. The
// *_templ.go files are generated from the .templ sources by `templ generate`.
package templates

//go:generate templ generate

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

// Page is the chrome shared by every full page.
type Page struct {
	Locale  i18n.Locale
	Title   string
	Path    string // Current path, used for the language switch
	Portals []PortalLink
}

// PortalLink is one entry of the top navigation.
type PortalLink struct {
	Label  string
	URL    string
	Active bool
}

// ListGroup is one dashboard section: the lists of a portal sharing a group.
type ListGroup struct {
	PortalKey string // Anchor id suffix: "admin"
	Portal    string // Localized portal name
	Name      string
	Lists     []ListCard
}

// ListCard links to one list page.
type ListCard struct {
	Label string
	URL   string
}

// TableData is everything the table component needs.
type TableData struct {
	Title   string
	PageURL string // e.g. /admin/discounts
	APIURL  string // e.g. /api/lists/discounts
	View    datatable.View
}

// PageSizes are the choices offered by the rows-per-page control.
var PageSizes = []int{10, 25, 50, 100}

// DashboardTitle is the page title of the dashboard.
func DashboardTitle(l i18n.Locale) string {
	return i18n.Lookup(l, "dashboard.lists")
}

// portalSection groups consecutive dashboard groups of one portal.
type portalSection struct {
	Key    string
	Name   string
	Groups []ListGroup
}

func portalSections(groups []ListGroup) []portalSection {
	var out []portalSection
	for _, g := range groups {
		if n := len(out); n > 0 && out[n-1].Key == g.PortalKey {
			out[n-1].Groups = append(out[n-1].Groups, g)
			continue
		}
		out = append(out, portalSection{Key: g.PortalKey, Name: g.Portal, Groups: []ListGroup{g}})
	}
	return out
}

func otherLocale(l i18n.Locale) i18n.Locale {
	if l == i18n.Arabic {
		return i18n.English
	}
	return i18n.Arabic
}

func languageURL(p Page) string {
	return p.Path + "?lang=" + otherLocale(p.Locale).String()
}

// sortURL requests the direction a click on col should produce. The
// direction is explicit so reloading the link never re-toggles.
func sortURL(d TableData, col datatable.HeaderView) string {
	return d.PageURL + "?" + url.Values{
		"sort": {col.Key},
		"dir":  {string(col.NextDir())},
	}.Encode()
}

func pageURL(d TableData, page int) string {
	return d.PageURL + "?page=" + strconv.Itoa(page)
}

func rowActionURL(d TableData, row datatable.RowView, action string) string {
	return d.APIURL + "/rows/" + url.PathEscape(row.Key) + "/actions/" + url.PathEscape(action)
}

func rowSelectURL(d TableData, row datatable.RowView) string {
	return d.APIURL + "/selection/" + url.PathEscape(row.Key)
}

func ariaSort(col datatable.HeaderView) string {
	if col.Dir == datatable.Descending {
		return "descending"
	}
	return "ascending"
}

func inputType(fieldType string) string {
	switch fieldType {
	case "numeric":
		return "number"
	case "date":
		return "date"
	default:
		return "text"
	}
}

func buttonClass(color string) string {
	if color == "" {
		color = "default"
	}
	return "btn btn-" + color
}

// colSpan is the number of columns a full-width row spans.
func colSpan(v datatable.View) string {
	n := len(v.Columns)
	if v.Selectable {
		n++
	}
	if len(v.Actions) > 0 {
		n++
	}
	return strconv.Itoa(n)
}

// activeFilters indexes the view's filters by column key.
func activeFilters(v datatable.View) map[string]datatable.Filter {
	m := make(map[string]datatable.Filter, len(v.Filters))
	for _, f := range v.Filters {
		m[f.Key] = f
	}
	return m
}

// pageSizeOptions returns PageSizes plus current when a list's own page
// size is not among them, so the control always shows the active value.
func pageSizeOptions(current int) []int {
	if current <= 0 || slices.Contains(PageSizes, current) {
		return PageSizes
	}
	sizes := append(slices.Clone(PageSizes), current)
	slices.Sort(sizes)
	return sizes
}
