package bridge

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// requestLogMiddleware logs each request when debug is enabled.
func requestLogMiddleware(debug bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !debug {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Printf("[API] %s %s (%s)", r.Method, r.URL.Path, time.Since(start))
		})
	}
}

// rateLimitMiddleware limits requests using a token bucket. The bridge serves
// a single local frontend, so one global bucket is enough.
func rateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
