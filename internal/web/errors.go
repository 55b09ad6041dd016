package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls s.fail(w, r, err), which picks the status from the error
//  3. Error is mapped via core.MapError to get the user message and code
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in the request's locale and format

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/web/templates"
)

var errInvalidRequest = errors.New("invalid request")

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor derives the HTTP status from the support code of err.
func statusFor(err error) int {
	switch core.MapError(err).Code {
	case "TBL001", "TBL002", "ACT002":
		return http.StatusNotFound
	case "SORT001", "SORT002", "FLT001", "SEL001", "SEL002", "ACT001", "VAL001":
		return http.StatusBadRequest
	case "ACT003", "ACT004":
		return http.StatusConflict
	case "AUTH001":
		return http.StatusUnauthorized
	case "RATE001":
		return http.StatusTooManyRequests
	case "DB004", "DB005", "ACT005":
		return http.StatusServiceUnavailable
	case "REQ002", "DB006":
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// fail responds to err with the status statusFor picks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, r, err, statusFor(err))
}

// respondError logs the technical error server-side and returns the mapped
// user message based on the request type (HTMX, JSON, or HTML).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)
	l := localeOf(r.Context())

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	message, action := userMsg.Message.In(l), userMsg.Action.In(l)
	switch {
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		templates.ErrorAlert(message, action, userMsg.Code).Render(r.Context(), w)
	case wantsJSON(r):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		writeJSON(w, ErrorResponse{
			Error:   message,
			Message: message,
			Action:  action,
			Code:    userMsg.Code,
		})
	default:
		http.Error(w, message+" ("+userMsg.Code+")", statusCode)
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
