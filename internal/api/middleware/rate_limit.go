package middleware

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

// idleTTL 超過此時間未使用的限流器會被清除
const idleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 以用戶端 IP 區分的令牌桶
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	requests  int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter 每個用戶端在 window 內最多 requests 次，可瞬間突發 burst 次
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	if burst <= 0 {
		burst = requests
	}
	return &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		burst:    burst,
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

// Allow 檢查該用戶端是否還有令牌
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > idleTTL {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > idleTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RetryAfter 取得一個令牌需要的秒數
func (rl *RateLimiter) RetryAfter() int {
	if rl.requests <= 0 {
		return int(math.Ceil(rl.window.Seconds()))
	}
	return int(math.Ceil(rl.window.Seconds() / float64(rl.requests)))
}

// RateLimit 限流中間件
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	limiter := NewRateLimiter(cfg.Requests, cfg.Window, cfg.Burst)
	return limiter.Handler()
}

// Handler 以 gin 中間件形式套用限流
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", rl.RetryAfter()))
			abort(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
