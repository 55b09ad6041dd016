package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storefront/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["code"]
}

// =============================================================================
// APIKeyAuth
// =============================================================================

func TestAPIKeyAuth(t *testing.T) {
	cfg := &config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"alpha", "beta"}}

	tests := []struct {
		name       string
		cfg        *config.SecurityConfig
		key        string
		wantStatus int
		wantCode   string
	}{
		{name: "disabled", cfg: &config.SecurityConfig{}, wantStatus: http.StatusOK},
		{name: "missing key", cfg: cfg, wantStatus: http.StatusUnauthorized, wantCode: "AUTH001"},
		{name: "wrong key", cfg: cfg, key: "gamma", wantStatus: http.StatusForbidden, wantCode: "AUTH001"},
		{name: "first key", cfg: cfg, key: "alpha", wantStatus: http.StatusOK},
		{name: "second key", cfg: cfg, key: "beta", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/lists/tags/selection", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			APIKeyAuth(tt.cfg)(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if code := decodeCode(t, rec); code != tt.wantCode {
					t.Errorf("code = %q, want %q", code, tt.wantCode)
				}
			}
		})
	}
}

// =============================================================================
// TrustedRealIP
// =============================================================================

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		header  map[string]string
		want    string
	}{
		{
			name:   "no proxies strips port",
			remote: "203.0.113.7:51000",
			want:   "203.0.113.7",
		},
		{
			name:   "untrusted proxy headers ignored",
			remote: "203.0.113.7:51000",
			header: map[string]string{"X-Real-IP": "10.9.9.9"},
			want:   "203.0.113.7",
		},
		{
			name:    "trusted proxy uses X-Real-IP",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:443",
			header:  map[string]string{"X-Real-IP": "198.51.100.4", "X-Forwarded-For": "192.0.2.1"},
			want:    "198.51.100.4",
		},
		{
			name:    "trusted proxy uses first forwarded hop",
			trusted: []string{"10.1.2.3"},
			remote:  "10.1.2.3:443",
			header:  map[string]string{"X-Forwarded-For": "192.0.2.1, 10.1.2.3"},
			want:    "192.0.2.1",
		},
		{
			name:    "invalid header keeps proxy address",
			trusted: []string{"10.0.0.0/8", "not-an-ip"},
			remote:  "10.1.2.3:443",
			header:  map[string]string{"X-Real-IP": "garbage"},
			want:    "10.1.2.3",
		},
		{
			name:   "ipv6",
			remote: "[2001:db8::1]:8080",
			want:   "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

// =============================================================================
// RateLimit
// =============================================================================

func TestRateLimit(t *testing.T) {
	h := RateLimit("test", 2)(okHandler)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send("192.0.2.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}

	rec := send("192.0.2.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("remaining = %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if code := decodeCode(t, rec); code != "RATE001" {
		t.Errorf("code = %q, want RATE001", code)
	}

	// Other clients have their own budget.
	if rec := send("192.0.2.2"); rec.Code != http.StatusOK {
		t.Errorf("second client: status %d", rec.Code)
	}
}

func TestRateLimit_NamesCountSeparately(t *testing.T) {
	h := RateLimit("requests", 1)(RateLimit("actions", 1)(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status %d", rec.Code)
	}
}

// =============================================================================
// SecurityHeaders
// =============================================================================

func TestSecurityHeaders(t *testing.T) {
	for _, csp := range []bool{true, false} {
		rec := httptest.NewRecorder()
		SecurityHeaders(csp)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		h := rec.Header()
		if h.Get("X-Content-Type-Options") != "nosniff" || h.Get("X-Frame-Options") != "DENY" {
			t.Errorf("csp=%v: missing hardening headers: %v", csp, h)
		}
		if got := h.Get("Content-Security-Policy") != ""; got != csp {
			t.Errorf("csp=%v: Content-Security-Policy present = %v", csp, got)
		}
	}
}

// =============================================================================
// Logger & Metrics
// =============================================================================

func TestLogger_PassesStatusThrough(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/lists/{list}", func(w http.ResponseWriter, r *http.Request) {
		m.TableRendered(chi.URLParam(r, "list"))
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/lists/tags", "/lists/tags", "/lists/faqs"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	m.ActionDispatched("tags", "delete", nil)
	m.ActionDispatched("returns", "refund", errors.New("invalid status change"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		`storefront_http_request_duration_seconds_count{method="GET",route="/lists/{list}",status="200"} 3`,
		`storefront_table_renders_total{list="tags"} 2`,
		`storefront_table_renders_total{list="faqs"} 1`,
		`storefront_row_actions_total{action="delete",list="tags",outcome="ok"} 1`,
		`storefront_row_actions_total{action="refund",list="returns",outcome="error"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
