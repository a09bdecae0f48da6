package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	burst    int
	every    time.Duration
}

// NewRateLimiter allows burst requests at once per client, refilling one
// token every period
func NewRateLimiter(burst int, every time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		burst:    burst,
		every:    every,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(rl.every), rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Allow reports whether key may make a request now and the tokens left
func (rl *RateLimiter) Allow(key string) (bool, int) {
	l := rl.limiter(key)
	ok := l.Allow()
	remaining := int(l.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return ok, remaining
}

// RateLimitMiddleware rejects clients that exhausted their bucket with 429
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining := rl.Allow(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(rl.every.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": APIError{
					Code:       ErrCodeRateLimited,
					Message:    "Too many requests, please try again later",
					RetryAfter: int(rl.every.Milliseconds()),
				},
			})
			return
		}
		c.Next()
	}
}

// AnalysisRateLimiter bounds analysis submissions: 20 at once, then one
// every 3 seconds per client
func AnalysisRateLimiter() *RateLimiter {
	return NewRateLimiter(20, 3*time.Second)
}
