package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

var errRateLimited = errors.New("rate limit exceeded")

// RateLimit returns middleware allowing perMinute requests per client IP.
// Each call gets its own in-memory store, so limits with different names
// count independently. Store failures let the request through.
func RateLimit(name string, perMinute int) func(http.Handler) http.Handler {
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "storefront:" + name,
		CleanUpInterval: time.Minute,
	})
	lim := limiter.New(store, limiter.Rate{Period: time.Minute, Limit: int64(perMinute)})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lctx, err := lim.Get(r.Context(), r.RemoteAddr)
			if err != nil {
				slog.Warn("rate limiter unavailable", "limit", name, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				retry := max(lctx.Reset-time.Now().Unix(), 1)
				h.Set("Retry-After", strconv.FormatInt(retry, 10))
				slog.Warn("rate limit reached", "limit", name, "ip", r.RemoteAddr, "path", r.URL.Path)
				writeError(w, http.StatusTooManyRequests, errRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
