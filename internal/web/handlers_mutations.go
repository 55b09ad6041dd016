package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/datatable"
)

// selectAllRequest is the body of POST /api/lists/{list}/selection. HTMX
// sends it form-encoded, API clients as JSON.
type selectAllRequest struct {
	Scope string `json:"scope" validate:"omitempty,oneof=page all"`
}

// decodeSelectAll reads and validates a selectAllRequest.
func (s *Server) decodeSelectAll(r *http.Request) (core.Scope, error) {
	var body selectAllRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
	} else {
		body.Scope = r.FormValue("scope")
	}

	if err := s.validate.Struct(body); err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return core.ParseScope(body.Scope)
}

// handleToggle flips the selection of one row.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	key, rowKey := chi.URLParam(r, "list"), chi.URLParam(r, "rowKey")

	res, err := s.withState(w, r, key, func(req core.Request) (core.Result, error) {
		return s.service.Toggle(r.Context(), req, rowKey)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondResult(w, r, res)
}

// handleSelectAll adds the current page or every filtered row to the
// selection.
func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "list")

	scope, err := s.decodeSelectAll(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.withState(w, r, key, func(req core.Request) (core.Result, error) {
		return s.service.SelectAll(r.Context(), req, scope)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondResult(w, r, res)
}

// handleDeselectPage removes the current page's rows from the selection.
func (s *Server) handleDeselectPage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "list")

	res, err := s.withState(w, r, key, func(req core.Request) (core.Result, error) {
		return s.service.DeselectPage(r.Context(), req)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondResult(w, r, res)
}

// handleClearSelection empties the selection.
func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "list")

	res, err := s.withState(w, r, key, func(req core.Request) (core.Result, error) {
		return s.service.ClearSelection(r.Context(), req)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondResult(w, r, res)
}

// handleDispatch runs a row action and returns the reloaded list.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "list")
	action, rowKey := chi.URLParam(r, "action"), chi.URLParam(r, "rowKey")

	ctx := WithRequestMetadata(r.Context(), r)
	res, err := s.withState(w, r, key, func(req core.Request) (core.Result, error) {
		return s.service.Dispatch(ctx, req, action, rowKey)
	})
	// Label values come from the registry only, never from the raw path.
	if _, ok := core.Get(key); ok {
		label := action
		if errors.Is(err, datatable.ErrUnknownAction) {
			label = "unknown"
		}
		s.metrics.ActionDispatched(key, label, err)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondResult(w, r, res)
}
