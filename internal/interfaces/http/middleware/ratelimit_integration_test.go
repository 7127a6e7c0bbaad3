//go:build integration

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/middleware"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisLimiter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	client := testutil.StartRedis(t)
	ctx := context.Background()

	t.Run("counts per key within the window", func(t *testing.T) {
		limiter := middleware.NewRedisLimiter(client, 2, time.Hour)

		allowed, remaining, err := limiter.Allow(ctx, "tenant:a")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, remaining)

		allowed, remaining, err = limiter.Allow(ctx, "tenant:a")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 0, remaining)

		allowed, _, err = limiter.Allow(ctx, "tenant:a")
		require.NoError(t, err)
		assert.False(t, allowed)

		allowed, _, err = limiter.Allow(ctx, "tenant:b")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("shared across middleware instances", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		newEngine := func() *gin.Engine {
			engine := gin.New()
			engine.Use(middleware.RateLimit(middleware.NewRedisLimiter(client, 1, time.Hour), zap.NewNop()))
			engine.GET("/api/v1/pricing/catalog", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			return engine
		}
		first, second := newEngine(), newEngine()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/catalog", nil)
		req.RemoteAddr = "203.0.113.7:1234"

		w := httptest.NewRecorder()
		first.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		second.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})
}
