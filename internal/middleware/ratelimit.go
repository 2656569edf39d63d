package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/brokerpulse/internal/domain/dto"
)

// Defaults used by RateLimiter.
var (
	window = time.Minute
	limit  = 60
)

type visitor struct {
	windowStart time.Time
	count       int
}

// fixedWindow counts requests per client IP in fixed windows.
type fixedWindow struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration

	lastSweep time.Time
}

func (f *fixedWindow) allow(ip string, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sweep(now)

	v, ok := f.visitors[ip]
	if !ok || now.Sub(v.windowStart) > f.window {
		f.visitors[ip] = &visitor{windowStart: now, count: 1}
		return true
	}
	v.count++
	return v.count <= f.limit
}

// sweep drops visitors whose window has expired. It runs at most once per
// window. Callers hold f.mu.
func (f *fixedWindow) sweep(now time.Time) {
	if now.Sub(f.lastSweep) <= f.window {
		return
	}
	for ip, v := range f.visitors {
		if now.Sub(v.windowStart) > f.window {
			delete(f.visitors, ip)
		}
	}
	f.lastSweep = now
}

// RateLimiter limits each client IP to `limit` requests per `window`
// (default: 60 per minute) and answers 429 beyond that.
//
// State is per process; several replicas each enforce their own budget.
func RateLimiter() gin.HandlerFunc {
	return NewRateLimiter(limit, window)
}

// NewRateLimiter is RateLimiter with an explicit budget.
func NewRateLimiter(max int, per time.Duration) gin.HandlerFunc {
	fw := &fixedWindow{visitors: make(map[string]*visitor), limit: max, window: per}
	return func(c *gin.Context) {
		if !fw.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
