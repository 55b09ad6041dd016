package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

type contextKey string

const ctxKeyLocale contextKey = "locale"

// localeCookie remembers an explicit ?lang= choice.
const localeCookie = "storefront_lang"

// WithRequestMetadata adds IP and User-Agent to context for action logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, r.RemoteAddr) // Already processed by TrustedRealIP
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}

func withLocale(ctx context.Context, l i18n.Locale) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, l)
}

// localeOf returns the negotiated locale, or the package default outside a
// request.
func localeOf(ctx context.Context) i18n.Locale {
	if l, ok := ctx.Value(ctxKeyLocale).(i18n.Locale); ok {
		return l
	}
	return i18n.Default
}

// negotiateLocale resolves the request locale: ?lang= first (and remembered
// in a cookie), then the cookie, then Accept-Language, then the configured
// default.
func (s *Server) negotiateLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.locale

		if c, err := r.Cookie(localeCookie); err == nil && i18n.Locale(c.Value).Valid() {
			l = i18n.Locale(c.Value)
		} else if al := r.Header.Get("Accept-Language"); al != "" {
			l = i18n.Match(al)
		}

		if q := i18n.Locale(strings.ToLower(r.URL.Query().Get("lang"))); q.Valid() {
			l = q
			http.SetCookie(w, &http.Cookie{
				Name:     localeCookie,
				Value:    q.String(),
				Path:     "/",
				MaxAge:   int(s.cfg.Session.TTL.Seconds()),
				HttpOnly: true,
				Secure:   s.cfg.Session.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(withLocale(r.Context(), l)))
	})
}
