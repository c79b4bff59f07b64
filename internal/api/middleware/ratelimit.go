package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Rrens/shoplist/internal/api/response"
)

// Limiter decides whether a keyed request fits its rate window.
// Returns (allowed, remaining, resetTime, error).
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
}

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	limiter Limiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit applies rate limiting keyed by the authenticated list.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listID, ok := GetListID(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		allowed, remaining, resetTime, err := m.limiter.Allow(r.Context(), strconv.FormatInt(listID, 10))
		if err != nil {
			// A broken limiter fails open
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.UTC().Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LocalLimiter is a per-process fixed-window limiter used when Redis is
// disabled. Counts reset at minute boundaries and are not shared across
// instances.
type LocalLimiter struct {
	limit int

	mu     sync.Mutex
	counts map[string]int
	window time.Time
}

// NewLocalLimiter creates a local fixed-window limiter
func NewLocalLimiter(requestsPerMinute, burst int) *LocalLimiter {
	return &LocalLimiter{
		limit:  requestsPerMinute + burst,
		counts: make(map[string]int),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	window := now.Truncate(time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !window.Equal(l.window) {
		l.window = window
		l.counts = make(map[string]int)
	}

	l.counts[key]++
	count := l.counts[key]

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, window.Add(time.Minute), nil
}
