package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter counts requests per key in fixed windows
type Limiter interface {
	// Allow records one request for key and reports whether it is within
	// the limit, together with the requests left in the current window
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
	Limit() int
}

// InMemoryLimiter is a fixed-window limiter for a single instance
type InMemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

type window struct {
	count int
	start time.Time
}

// NewInMemoryLimiter creates a limiter allowing limit requests per period
func NewInMemoryLimiter(limit int, period time.Duration) *InMemoryLimiter {
	return &InMemoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Limit returns the requests allowed per window
func (l *InMemoryLimiter) Limit() int {
	return l.limit
}

// Allow implements Limiter
func (l *InMemoryLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		l.evictExpired(now)
		w = &window{start: now}
		l.windows[key] = w
	}

	if w.count >= l.limit {
		return false, 0, nil
	}
	w.count++
	return true, l.limit - w.count, nil
}

// evictExpired drops windows that ended; called with mu held
func (l *InMemoryLimiter) evictExpired(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
		}
	}
}

// RedisLimiter is a fixed-window limiter shared by every instance that
// uses the same Redis
type RedisLimiter struct {
	client    redis.UniversalClient
	limit     int
	period    time.Duration
	keyPrefix string
}

// NewRedisLimiter creates a limiter allowing limit requests per period
func NewRedisLimiter(client redis.UniversalClient, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		limit:     limit,
		period:    period,
		keyPrefix: "pricing:ratelimit:",
	}
}

// Limit returns the requests allowed per window
func (l *RedisLimiter) Limit() int {
	return l.limit
}

// Allow implements Limiter. The window key expires with the window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	slot := time.Now().UnixNano() / int64(l.period)
	redisKey := l.keyPrefix + key + ":" + strconv.FormatInt(slot, 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.period)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, l.limit, err
	}

	count := int(incr.Val())
	if count > l.limit {
		return false, 0, nil
	}
	return true, l.limit - count, nil
}

var (
	_ Limiter = (*InMemoryLimiter)(nil)
	_ Limiter = (*RedisLimiter)(nil)
)

// RateLimit limits requests per organization once the caller is known and
// per client IP before that. Limiter failures let the request through.
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	limit := strconv.Itoa(limiter.Limit())
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if tenantID := GetJWTTenantID(c); tenantID != "" {
			key = "tenant:" + tenantID
		}

		allowed, remaining, err := limiter.Allow(c.Request.Context(), key)
		if err != nil && logger != nil {
			logger.Warn("Rate limiter unavailable", zap.String("key", key), zap.Error(err))
		}

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
