package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Counter increments a windowed request count. Backed by Redis in
// production; tests substitute an in-memory implementation.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// RateLimit caps requests per client address within a fixed window. The
// windows are configuration, not contract; the defaults are lenient and
// intended as low-stakes protection. Counter failures fail open: a broken
// Redis must not take the API down with it.
func RateLimit(counter Counter, scope string, max int, window time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		count, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Warn().Err(err).Str("scope", scope).Msg("rate limit counter failed")
			c.Next()
			return
		}

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}
