package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ikkim/dessert-review-backend/internal/errors"
	"golang.org/x/time/rate"
)

const rateLimiterKeys = 10000

// RateLimiter 회원(비회원은 IP) 단위 토큰 버킷
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerSecond, burst int) (*RateLimiter, error) {
	limiters, err := lru.New[string, *rate.Limiter](rateLimiterKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to create limiter cache: %w", err)
	}
	return &RateLimiter{
		limiters: limiters,
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}, nil
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	// 동시에 만든 경우 먼저 들어간 것 사용
	if prev, ok, _ := rl.limiters.PeekOrAdd(key, limiter); ok {
		return prev
	}
	return limiter
}

func rateLimitKey(c *gin.Context) string {
	if memberID, ok := GetMemberID(c); ok {
		return fmt.Sprintf("member:%d", memberID)
	}
	return "ip:" + c.ClientIP()
}

// Handler 초과 요청은 429로 거절
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c)
		if rl.getLimiter(key).Allow() {
			c.Next()
			return
		}

		GetLoggerFromContext(c).Warn("Rate limit exceeded", map[string]interface{}{
			"key":  key,
			"path": c.Request.URL.Path,
		})
		errors.RespondWithError(c, http.StatusTooManyRequests, errors.InternalRateLimited, "요청이 너무 많습니다. 잠시 후 다시 시도해주세요")
		c.Abort()
	}
}
