package api

import (
	"net"
	"net/http"
	"sync"

	"shareit/internal/metrics"

	"golang.org/x/time/rate"
)

// ClientLimiter keeps a token bucket per client address.
type ClientLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &ClientLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *ClientLimiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

func (l *ClientLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

// Wrap rejects requests over the client's budget with 429. A non-positive
// rate disables limiting.
func (l *ClientLimiter) Wrap(next http.Handler) http.Handler {
	if l == nil || l.rps <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientKey(r)) {
			metrics.IncRateLimited()
			WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientKey identifies the caller by remote host.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
