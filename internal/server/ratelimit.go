package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lealre/carsdb-backend/internal/api"
	"github.com/lealre/carsdb-backend/internal/logx"
	"golang.org/x/time/rate"
)

// keyedLimiter keeps one token bucket per client key. Buckets idle for
// longer than idleTTL are dropped on the next access.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

func (kl *keyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := kl.now()
	for k, entry := range kl.limiters {
		if now.Sub(entry.lastSeen) > kl.idleTTL {
			delete(kl.limiters, k)
		}
	}

	entry, ok := kl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// AuthRateLimit throttles sign in and sign up per client IP.
func AuthRateLimit(limiter *keyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				logx.FromContext(r.Context()).Warn().Str("ip", ip).Msg("auth rate limit exceeded")
				api.RespondWithTooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
