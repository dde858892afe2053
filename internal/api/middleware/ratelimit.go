package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nba-gm-sim/matchengine/pkg/utils"
)

// RateLimit caps requests per client IP using a token bucket per
// identified client, the same rate.Limiter primitive the teacher's
// external API clients use to stay under third-party quotas, applied
// here to the inbound side instead.
func RateLimit(rps int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	getLimiter := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), rps)
			limiters[key] = l
		}
		return l
	}

	return func(c *gin.Context) {
		if !getLimiter(c.ClientIP()).Allow() {
			utils.SendError(c, http.StatusTooManyRequests, utils.NewAppError(utils.ErrCodeValidation, "rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
