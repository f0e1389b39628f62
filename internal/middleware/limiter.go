package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"quickcart/internal/auth"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Catalog refresh hits the upstream catalog (Strict)
	limitStrict = rate.Limit(1)
	burstStrict = 3

	// Cart mutations
	limitCart = rate.Limit(10)
	burstCart = 20

	// Reads (Default)
	limitGeneral = rate.Limit(20)
	burstGeneral = 40

	// Token verification per IP, checked before Auth
	limitToken = rate.Limit(10)
	burstToken = 50
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup removes visitors not seen for maxIdle, every interval, until ctx
// is done.
func (l *Limiter) Cleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evict(maxIdle)
		}
	}
}

func (l *Limiter) evict(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > maxIdle {
			delete(l.visitors, key)
		}
	}
}

// Middleware rejects requests over the caller's quota with 429. Run it after
// Auth so signed-in users get their own bucket.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		identity := "ip:" + clientIP(r)
		if u := auth.UserFrom(r.Context()); u != nil {
			identity = "user:" + u.ID
		}

		// Same caller gets separate quotas per tier, e.g. "user:42:cart".
		if !l.getVisitor(identity+":"+tier, limit, burst).Allow() {
			writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// TokenMiddleware bounds how many session tokens one IP can have verified.
// Run it before Auth so rejected tokens are counted too. Requests without a
// token pass through.
func (l *Limiter) TokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.ExtractAccessToken(r) == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !l.getVisitor("ip:"+clientIP(r)+":token", limitToken, burstToken).Allow() {
			writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	switch {
	case r.URL.Path == "/api/products/refresh":
		return limitStrict, burstStrict, "strict"
	case strings.HasPrefix(r.URL.Path, "/api/cart") && r.Method != http.MethodGet:
		return limitCart, burstCart, "cart"
	default:
		return limitGeneral, burstGeneral, "general"
	}
}
