package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"bitbucket.org/crgw/booking-engine/internal/tools/middleware"
)

// The evaluate and quote endpoints are driven per keystroke from the
// booking form, so they carry a per-client limiter.
type ClientLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rps      float64
	burst    int
}

func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

func (l *ClientLimiter) limiterFor(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
	l.limiters[client] = limiter
	return limiter
}

func RateLimit(limiter *ClientLimiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !limiter.limiterFor(ctx.ClientIP()).Allow() {
			middleware.HandleError(ctx, http.StatusTooManyRequests, "Too many requests", nil)
			ctx.Abort()
			return
		}
	}
}
