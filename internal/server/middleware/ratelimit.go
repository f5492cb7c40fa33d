package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rgreinho/request-yo-racks-api/internal/server/response"
)

// RateLimiter is a fixed window limiter keyed by client IP. Each collect
// request fans out to every provider, so the limit bounds provider quota use
// per client.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*window
	limit    int
	interval time.Duration
	now      func() time.Time
	logger   *zerolog.Logger
}

type window struct {
	count int
	start time.Time
}

// NewRateLimiter allows limit requests per interval per client.
func NewRateLimiter(limit int, interval time.Duration, logger *zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		clients:  make(map[string]*window),
		limit:    limit,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Allow reports whether client may issue another request. Expired windows
// are pruned as a side effect.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.clients {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.clients, key)
		}
	}

	w, ok := rl.clients[client]
	if !ok {
		w = &window{start: now}
		rl.clients[client] = w
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// RateLimit rejects clients over the limit with 429.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.Allow(ip) {
				rl.logger.Warn().
					Str("ip", ip).
					Str("path", r.URL.Path).
					Msg("Rate limit exceeded")
				response.RateLimited(w, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
