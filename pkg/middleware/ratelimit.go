package middleware

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rateLimitPeriod = time.Minute

// RateLimiter allows limit requests per client IP per minute. It lets
// traffic through when Redis is unavailable.
func RateLimiter(redis *cache.RedisClient, limit int, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redis == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "rate_limit:" + c.ClientIP()
		count, err := redis.Incr(c.Request.Context(), key, rateLimitPeriod)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
