package router

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/contactrelay/internal/pkg/ratelimit"
)

const msgTooManyRequests = "Too many requests, please try again later."

func middlewareRateLimit(limiter ratelimit.Limiter) Middleware {
	if limiter == nil {
		return nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				// a broken limiter store must not take the endpoint down
				slog.WarnContext(r.Context(), "rate limiter unavailable, request allowed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retry := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
				writeJSON(w, errorResponse{Error: msgTooManyRequests}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey relies on middlewareIP having normalized RemoteAddr.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
