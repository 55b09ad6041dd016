package web

// This file contains shared request parsing and response helpers used
// across handlers.

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
	"github.com/JonMunkholm/storefront/internal/web/templates"
)

// pageParams are the scalar table query parameters, validated before they
// reach the service.
type pageParams struct {
	Sort    string `validate:"omitempty,max=64"`
	Dir     string `validate:"omitempty,oneof=asc desc"`
	Page    int
	PerPage int    `validate:"omitempty,min=1"`
	Search  string `validate:"max=200"`
}

// parseQuery decodes the table interaction of a request:
//
//	?sort=code&dir=desc&page=2&per_page=25&search=sale&filter[active]=eq:yes
//
// The filter drawer submits op[key] and value[key] pairs instead of
// filter[key]; both forms are accepted. Filters and search replace the
// active ones whenever either is present, or when filters=1 is sent.
func (s *Server) parseQuery(r *http.Request) (core.Query, error) {
	v := r.URL.Query()

	p := pageParams{
		Sort:   strings.TrimSpace(v.Get("sort")),
		Dir:    strings.ToLower(strings.TrimSpace(v.Get("dir"))),
		Search: strings.TrimSpace(v.Get("search")),
	}
	var err error
	if p.Page, err = intParam(v, "page"); err != nil {
		return core.Query{}, err
	}
	if p.PerPage, err = intParam(v, "per_page"); err != nil {
		return core.Query{}, err
	}
	if err := s.validate.Struct(p); err != nil {
		return core.Query{}, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}

	filters := parseFilters(v)
	return core.Query{
		SortKey:    p.Sort,
		SortDir:    p.Dir,
		Page:       p.Page,
		PerPage:    p.PerPage,
		SetFilters: v.Has("filters") || v.Has("search") || len(filters) > 0,
		Filters:    filters,
		Search:     p.Search,
	}, nil
}

// intParam parses an optional integer query parameter. Missing means 0.
func intParam(v url.Values, name string) (int, error) {
	s := strings.TrimSpace(v.Get(name))
	if s == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errInvalidRequest, name)
	}
	return i, nil
}

// parseFilters extracts column filters from URL query parameters, ordered by
// column key. Empty values are skipped so blank drawer fields clear their
// filter.
func parseFilters(v url.Values) []datatable.Filter {
	var filters []datatable.Filter
	for key, values := range v {
		switch {
		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			col := key[len("filter[") : len(key)-1]
			if col == "" {
				continue
			}
			for _, val := range values {
				if f, ok := datatable.ParseFilter(col, val); ok {
					filters = append(filters, f)
				}
			}

		case strings.HasPrefix(key, "value[") && strings.HasSuffix(key, "]"):
			col := key[len("value[") : len(key)-1]
			val := strings.TrimSpace(v.Get(key))
			if col == "" || val == "" {
				continue
			}
			op := v.Get("op[" + col + "]")
			if op == "" {
				op = string(datatable.OpContains)
			}
			filters = append(filters, datatable.Filter{Key: col, Op: datatable.Operator(op), Value: val})
		}
	}

	slices.SortStableFunc(filters, func(a, b datatable.Filter) int {
		return strings.Compare(a.Key, b.Key)
	})
	return filters
}

// tableData builds the table component input for a result.
func tableData(res core.Result) templates.TableData {
	return templates.TableData{
		Title:   res.Info.Label.In(res.View.Locale),
		PageURL: "/" + string(res.Info.Portal) + "/" + res.Info.Key,
		APIURL:  "/api/lists/" + res.Info.Key,
		View:    res.View,
	}
}

// respondResult answers an interaction with the re-rendered table for HTMX
// requests and with the result as JSON otherwise.
func (s *Server) respondResult(w http.ResponseWriter, r *http.Request, res core.Result) {
	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.Table(tableData(res)).Render(r.Context(), w)
		return
	}
	writeJSON(w, res)
}

// portalLinks builds the top navigation for the registered portals.
func portalLinks(r *http.Request, active core.Portal) []templates.PortalLink {
	l := localeOf(r.Context())
	var links []templates.PortalLink
	for _, p := range core.Portals() {
		links = append(links, templates.PortalLink{
			Label:  p.Label().In(l),
			URL:    "/#portal-" + string(p),
			Active: p == active,
		})
	}
	return links
}
