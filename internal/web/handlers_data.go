package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/logging"
)

// handleListView applies the request's query to the session state and
// returns the resulting view as JSON (or the table fragment for HTMX).
func (s *Server) handleListView(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "list")

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
	s.respondResult(w, r, res)
}

// auditParams are the query parameters of the audit log endpoints.
type auditParams struct {
	Limit int `validate:"min=1,max=500"`
}

// handleAuditLog returns recent row actions as JSON, newest first: those of
// one list under /api/lists/{list}/audit, of every list under /api/audit.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	p := auditParams{Limit: 50}
	if r.URL.Query().Has("limit") {
		n, err := intParam(r.URL.Query(), "limit")
		if err != nil {
			s.fail(w, r, err)
			return
		}
		p.Limit = n
	}
	if err := s.validate.Struct(p); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	entries, err := s.service.AuditLog(r.Context(), chi.URLParam(r, "list"), p.Limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, entries)
}

// handleExport streams every row passing the session's filters, in the
// session's sort order, as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "list")
	start := time.Now()

	req := core.Request{
		List:   key,
		State:  s.peekState(w, r, key),
		Locale: localeOf(r.Context()),
	}

	// Buffer so a failure can still be reported with a proper status.
	var buf bytes.Buffer
	if err := s.service.Export(r.Context(), req, &buf); err != nil {
		s.fail(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", key, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "list", key, "error", err)
		return
	}

	logging.WithFields(r.Context(), "list", key).Info("list exported",
		"locale", req.Locale,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
