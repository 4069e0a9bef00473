package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	defaultAuthAttemptBurst = 8
	visitorIdleTTL          = 15 * time.Minute
)

var defaultAuthAttemptRate = rate.Every(12 * time.Second)

type attemptVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// attemptLimiter is a per-key token bucket for credential endpoints.
type attemptLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors map[string]*attemptVisitor
}

func newAttemptLimiter(limit rate.Limit, burst int) *attemptLimiter {
	if burst < 1 {
		burst = 1
	}
	return &attemptLimiter{
		limit:    limit,
		burst:    burst,
		visitors: make(map[string]*attemptVisitor),
	}
}

func (limiter *attemptLimiter) allow(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.pruneLocked(now)

	visitor, exists := limiter.visitors[key]
	if !exists {
		visitor = &attemptVisitor{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.visitors[key] = visitor
	}
	visitor.lastSeen = now
	return visitor.limiter.AllowN(now, 1)
}

func (limiter *attemptLimiter) pruneLocked(now time.Time) {
	for key, visitor := range limiter.visitors {
		if now.Sub(visitor.lastSeen) > visitorIdleTTL {
			delete(limiter.visitors, key)
		}
	}
}

func (limiter *attemptLimiter) size() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.visitors)
}

func requestLimiterKey(c *fiber.Ctx) string {
	return c.IP()
}

func (handler *Handler) RateLimitAuth(c *fiber.Ctx) error {
	if !handler.authLimiter.allow(requestLimiterKey(c), handler.clock.Now()) {
		handler.metrics.authRejected("rate_limited")
		c.Set(fiber.HeaderRetryAfter, "60")
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}
	return c.Next()
}
