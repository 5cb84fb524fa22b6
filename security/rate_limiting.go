package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"github.com/Jethin10/Hack-FInder/monitoring"
)

type RateLimiter struct {
	redis     *redis.Client
	perMinute int
	monitor   *monitoring.Monitor
}

func NewRateLimiter(redisClient *redis.Client, perMinute int, monitor *monitoring.Monitor) *RateLimiter {
	if perMinute < 1 {
		perMinute = 30
	}
	return &RateLimiter{redis: redisClient, perMinute: perMinute, monitor: monitor}
}

// PerClient is a fixed-window per-IP limiter for the mutating endpoints.
// When Redis is unreachable the limiter fails open: the listing API must not
// go down with the cache.
func (r *RateLimiter) PerClient(scope string) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, e.RealIP())
		if !r.allow(e.Request.Context(), key) {
			if r.monitor != nil {
				r.monitor.TrackRateLimited()
			}
			return apis.NewApiError(429, "Rate limit exceeded. Please try again later.", nil)
		}
		return e.Next()
	}
}

// allow records one hit against key and reports whether the client is still
// inside its window. The window starts with the first hit.
func (r *RateLimiter) allow(ctx context.Context, key string) bool {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		r.redis.Expire(ctx, key, time.Minute)
	}
	return count <= int64(r.perMinute)
}

// BlockScrapers rejects obvious automation on the expensive endpoints.
func (r *RateLimiter) BlockScrapers() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if isSuspiciousUserAgent(userAgent) {
			return apis.NewForbiddenError("Access denied", nil)
		}
		return e.Next()
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
