package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/logger"
	"followuply/internal/metrics"
	"followuply/internal/ratelimit"
	"followuply/internal/toast"
)

// RateLimit throttles action per authenticated user. It must run after
// AuthMiddleware. Rejections answer 429 with Retry-After.
func RateLimit(limiter *ratelimit.Limiter, m *metrics.Metrics, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey)
		if userID == "" || limiter == nil {
			c.Next()
			return
		}

		d := limiter.Check(ratelimit.Key(userID, action), limit, window)
		if d.Allowed {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			c.Next()
			return
		}

		secs := d.RetryAfterSeconds()
		logger.Get().Warnw("rate limit exceeded",
			"request_id", RequestID(c),
			"user_id", userID,
			"action", action,
			"retry_after_seconds", secs,
		)
		m.RateLimitHit(action)

		status, body := toast.ErrorResponse(apperrors.RateLimited(secs))
		body["retry_after_seconds"] = secs
		c.Header("Retry-After", strconv.Itoa(secs))
		c.AbortWithStatusJSON(status, body)
	}
}
