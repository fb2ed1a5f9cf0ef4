package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"ems-project/backend/logging"
	"ems-project/backend/utils"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// PerMinute builds a limiter allowing n requests per minute with a burst of n.
func PerMinute(n int) *RateLimiter {
	if n <= 0 {
		n = 1
	}
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(n)), n)
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     limit,
		burst:    burst,
	}
}

// clientIP strips the port from RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Sweep drops buckets that have refilled completely. Run it periodically
// until stop is closed.
func (rl *RateLimiter) Sweep(every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				if limiter.Tokens() >= float64(rl.burst) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.getLimiter(ip).Allow() {
			logging.Logger.Warnf("Event ID: RATE_LIMIT_EXCEEDED, Description: Too many requests from %s to %s %s", ip, r.Method, r.URL.Path)
			utils.RespondWithMessage(w, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
