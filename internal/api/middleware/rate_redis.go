package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/ramosdigital/contact-api/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	submitWindow     = time.Minute
	submitKeyPrefix  = "rl:submit:ip:"
	redisCallTimeout = 500 * time.Millisecond
)

// SubmitLimiter limits contact submissions per client IP. With a Redis client
// it counts a fixed one-minute window shared by every instance, allowing
// perMinute+burst submissions per window. Without one, or while Redis is
// unreachable, each instance applies an in-memory token bucket instead.
type SubmitLimiter struct {
	client  *redis.Client
	allowed int64
	memory  *memoryLimiter
	logger  *logging.Logger
	now     func() time.Time
}

// NewSubmitLimiter builds the limiter. client may be nil.
func NewSubmitLimiter(client *redis.Client, perMinute, burst int, logger *logging.Logger) *SubmitLimiter {
	return &SubmitLimiter{
		client:  client,
		allowed: int64(perMinute + burst),
		memory:  newMemoryLimiter(perMinute, burst),
		logger:  logger,
		now:     time.Now,
	}
}

// Middleware returns the gin handler enforcing the limit.
func (l *SubmitLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		key := submitKeyPrefix + ip

		if l.client != nil {
			ok, retry, err := l.allowRedis(c.Request.Context(), key)
			if err == nil {
				l.finish(c, "redis", ok, retry)
				return
			}
			l.logger.Warn("[RATE] redis limiter unavailable, using memory: %v", err)
		}

		ok, retry := l.memory.allow(key)
		l.finish(c, "memory", ok, retry)
	}
}

func (l *SubmitLimiter) finish(c *gin.Context, limiter string, ok bool, retry time.Duration) {
	if !ok {
		metrics.RateLimitRejected.WithLabelValues(limiter).Inc()
		l.logger.Info("[RATE] submission limit reached for %s", c.ClientIP())
		abortRateLimited(c, retry)
		return
	}
	metrics.RateLimitAllowed.WithLabelValues(limiter).Inc()
	c.Next()
}

func (l *SubmitLimiter) allowRedis(ctx context.Context, key string) (bool, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()

	now := l.now()
	windowSeconds := int64(submitWindow.Seconds())
	bucket := now.Unix() / windowSeconds
	redisKey := fmt.Sprintf("%s:%d", key, bucket)

	cnt, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if cnt == 1 {
		_ = l.client.Expire(ctx, redisKey, submitWindow+time.Second).Err()
	}
	if cnt > l.allowed {
		windowEnd := time.Unix((bucket+1)*windowSeconds, 0)
		return false, windowEnd.Sub(now), nil
	}
	return true, 0, nil
}

// NewRedisClient parses REDIS_URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
