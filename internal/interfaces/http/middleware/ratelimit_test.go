package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		limiter := NewInMemoryLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, remaining, err := limiter.Allow(ctx, "client")
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, 2-i, remaining)
		}

		allowed, remaining, _ := limiter.Allow(ctx, "client")
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
	})

	t.Run("separate limits per key", func(t *testing.T) {
		limiter := NewInMemoryLimiter(1, time.Minute)

		allowed, _, _ := limiter.Allow(ctx, "a")
		assert.True(t, allowed)
		allowed, _, _ = limiter.Allow(ctx, "a")
		assert.False(t, allowed)
		allowed, _, _ = limiter.Allow(ctx, "b")
		assert.True(t, allowed)
	})

	t.Run("resets after the window", func(t *testing.T) {
		limiter := NewInMemoryLimiter(1, time.Minute)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		allowed, _, _ := limiter.Allow(ctx, "a")
		assert.True(t, allowed)
		allowed, _, _ = limiter.Allow(ctx, "a")
		assert.False(t, allowed)

		now = now.Add(time.Minute)
		allowed, _, _ = limiter.Allow(ctx, "a")
		assert.True(t, allowed)
	})

	t.Run("concurrent access stays within limit", func(t *testing.T) {
		limiter := NewInMemoryLimiter(50, time.Minute)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, _, _ := limiter.Allow(ctx, "shared")
				if ok {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(NewInMemoryLimiter(2, time.Minute), nil))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeRateLimited)
}
