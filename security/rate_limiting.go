package security

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"ticketsmaster/monitoring"
)

type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
	}
}

// LimitLogin wraps an authentication handler with a fixed-window counter
// keyed by client IP. The limiter fails open when Redis is unreachable.
func (r *RateLimiter) LimitLogin(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if isSuspiciousUserAgent(userAgent) {
			return apis.NewForbiddenError("Access denied", nil)
		}

		ctx := e.Request.Context()
		key := fmt.Sprintf("ratelimit:login:%s", e.RealIP())

		count, err := r.redis.Incr(ctx, key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(ctx, key, r.window)
			}
			if count > int64(r.limit) {
				monitoring.TrackRateLimited()
				return apis.NewApiError(http.StatusTooManyRequests,
					"Too many login attempts. Please try again later.", nil)
			}
		}

		return next(e)
	}
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
