package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ramosdigital/contact-api/internal/api/dto/common"
	"github.com/ramosdigital/contact-api/internal/api/dto/v1/contact"
	"github.com/ramosdigital/contact-api/internal/metrics"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the global rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware caps the total request rate of the process.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			metrics.RateLimitRejected.WithLabelValues("global").Inc()
			abortRateLimited(c, time.Second)
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("global").Inc()

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RPS))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}

func abortRateLimited(c *gin.Context, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, contact.ContactResponse{
		Success: false,
		Error:   localizedMessage(c, msgRateLimited),
		Code:    string(common.ErrCodeTooManyRequests),
	})
}

const (
	memoryIdleTTL     = 10 * time.Minute
	memorySweepLength = 10000
)

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter is a per-key token bucket store.
type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func newMemoryLimiter(perMinute, burst int) *memoryLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &memoryLimiter{
		entries: make(map[string]*memoryEntry),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// allow consumes a token for key and reports the wait for the next one when denied.
func (m *memoryLimiter) allow(key string) (bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if len(m.entries) >= memorySweepLength {
		for k, e := range m.entries {
			if now.Sub(e.lastSeen) > memoryIdleTTL {
				delete(m.entries, k)
			}
		}
	}

	e, ok := m.entries[key]
	if !ok {
		e = &memoryEntry{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.entries[key] = e
	}
	e.lastSeen = now

	if e.limiter.AllowN(now, 1) {
		return true, 0
	}
	r := e.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, delay
}
