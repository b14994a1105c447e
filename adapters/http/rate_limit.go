package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

// Lua script for atomic increment with TTL on first set.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	// Reject writes the 429 response. Nil means a JSON error body.
	Reject func(c *gin.Context)
}

const TooManyAttemptsMessage = "Too many attempts, please try again later"

func LoginRateLimitConfig(limit int) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: time.Minute, KeyPrefix: "rl:login:"}
}

type rateLimiter struct {
	cfg    RateLimitConfig
	rdb    *redis.Client
	local  *gocache.Cache
	logger logger.Logger
}

// RateLimitMiddleware counts requests per client IP in Redis, falling back to process memory
// when Redis is absent or failing. A non-positive limit disables the check.
func RateLimitMiddleware(cfg RateLimitConfig, rdb *redis.Client, log logger.Logger) gin.HandlerFunc {
	rl := &rateLimiter{
		cfg:    cfg,
		rdb:    rdb,
		local:  gocache.New(cfg.Window, 5*time.Minute),
		logger: log,
	}

	return func(c *gin.Context) {
		if cfg.Limit <= 0 {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + c.ClientIP()
		count, resetAt := rl.hit(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		if count > cfg.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			rl.logger.Warn("Rate limit triggered", zap.String("key", key), zap.Int("count", count))
			if cfg.Reject != nil {
				cfg.Reject(c)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": TooManyAttemptsMessage})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-count))
		c.Next()
	}
}

func (rl *rateLimiter) hit(ctx context.Context, key string) (int, time.Time) {
	if rl.rdb != nil {
		count, resetAt, err := rl.hitRedis(ctx, key)
		if err == nil {
			return count, resetAt
		}
		rl.logger.Warn("Redis rate limit failed, using in-memory counter", zap.Error(err))
	}
	return rl.hitLocal(key)
}

func (rl *rateLimiter) hitRedis(ctx context.Context, key string) (int, time.Time, error) {
	result, err := rl.rdb.Eval(ctx, rateLimitLuaScript, []string{key}, int(rl.cfg.Window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	arr, ok := result.([]any)
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *rateLimiter) hitLocal(key string) (int, time.Time) {
	// Add only succeeds for the first hit of a window, so the expiry is set once.
	if err := rl.local.Add(key, 0, rl.cfg.Window); err == nil {
		rl.local.Set(key+":reset", time.Now().Add(rl.cfg.Window), rl.cfg.Window)
	}
	count, err := rl.local.IncrementInt(key, 1)
	if err != nil {
		rl.local.Set(key, 1, rl.cfg.Window)
		count = 1
	}
	resetAt := time.Now().Add(rl.cfg.Window)
	if v, ok := rl.local.Get(key + ":reset"); ok {
		resetAt = v.(time.Time)
	}
	return count, resetAt
}
