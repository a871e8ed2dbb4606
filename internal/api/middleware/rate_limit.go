package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/pkg/redis"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// RateLimit sliding-window limit per client and route, kept in Redis.
// A nil client or a Redis error lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.TooManyRequests(c, 10004, "too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
