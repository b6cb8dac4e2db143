package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/pkg/logger"
	"github.com/talentbridge/backend/pkg/redis"
	"github.com/talentbridge/backend/pkg/response"
)

// RateLimitConfig bounds how often one client IP may hit the public auth
// endpoints inside a fixed window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Prefix   string
}

// DefaultRateLimitConfig allows 30 requests per minute per IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests: 30,
		Window:   time.Minute,
		Prefix:   "ratelimit:auth:",
	}
}

// RateLimit implements a fixed-window counter in redis keyed by client IP and
// route. Redis being unreachable fails open: throttling is protection, not a
// correctness requirement, and auth must stay available.
func RateLimit(client *redis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s%s:%s", cfg.Prefix, c.FullPath(), c.ClientIP())
		ctx := c.Request.Context()

		count, err := client.Client().Incr(ctx, key).Result()
		if err != nil {
			logger.Get().Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			client.Client().Expire(ctx, key, cfg.Window)
		}
		if count > int64(cfg.Requests) {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests, slow down", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
