package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/logging"
	"github.com/JonMunkholm/storefront/internal/web/templates"
)

// handleHealth reports liveness and the number of registered lists.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status": "ok",
		"lists":  core.ListCount(),
	})
}

// handleDashboard renders the list index, grouped by portal and group.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	l := localeOf(r.Context())

	var groups []templates.ListGroup
	for _, info := range s.service.ListLists() {
		name := info.Group.In(l)
		last := len(groups) - 1
		if last < 0 || groups[last].PortalKey != string(info.Portal) || groups[last].Name != name {
			groups = append(groups, templates.ListGroup{
				PortalKey: string(info.Portal),
				Portal:    info.Portal.Label().In(l),
				Name:      name,
			})
			last++
		}
		groups[last].Lists = append(groups[last].Lists, templates.ListCard{
			Label: info.Label.In(l),
			URL:   "/" + string(info.Portal) + "/" + info.Key,
		})
	}

	page := templates.Page{
		Locale:  l,
		Title:   templates.DashboardTitle(l),
		Path:    r.URL.Path,
		Portals: portalLinks(r, ""),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Layout(page, templates.Dashboard(l, groups)).Render(r.Context(), w)
}

// handleListPage renders a list page. HTMX requests get only the table
// section so sorting, paging and filtering swap it in place.
func (s *Server) handleListPage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "list")

	info, err := s.service.Info(key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if string(info.Portal) != chi.URLParam(r, "portal") {
		s.fail(w, r, fmt.Errorf("%w: %s/%s", core.ErrUnknownList, chi.URLParam(r, "portal"), key))
		return
	}

	q, err := s.parseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	res, err := s.withState(w, r, key, func(req core.Request) (core.Result, error) {
		return s.service.Page(ctx, req, q)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.TableRendered(key)
	logging.WithFields(r.Context(), "list", key).Debug("table rendered",
		"page", res.View.Page.Page,
		"rows", len(res.View.Rows),
		"total", res.View.Page.TotalItems,
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	table := templates.Table(tableData(res))
	if isHTMX(r) {
		table.Render(r.Context(), w)
		return
	}

	page := templates.Page{
		Locale:  res.View.Locale,
		Title:   info.Label.In(res.View.Locale),
		Path:    r.URL.Path,
		Portals: portalLinks(r, info.Portal),
	}
	templates.Layout(page, table).Render(r.Context(), w)
}

// handleListLists returns every registered list, optionally only those of
// ?portal=.
func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("portal")
	if p == "" {
		writeJSON(w, s.service.ListLists())
		return
	}

	portal, err := core.ParsePortal(p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, s.service.ListsByPortal(portal))
}
