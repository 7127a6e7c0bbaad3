package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newProfilingRouter(cfg ProfilingConfig, seen *string) *gin.Engine {
	router := gin.New()
	router.Use(Profiling(cfg))
	capture := func(c *gin.Context) {
		*seen, _ = pprof.Label(c.Request.Context(), "operation")
		c.Status(http.StatusOK)
	}
	router.GET("/health", capture)
	router.POST("/api/v1/pricing/products/:id/quote", capture)
	return router
}

func TestProfiling_LabelsRoute(t *testing.T) {
	var seen string
	router := newProfilingRouter(DefaultProfilingConfig(), &seen)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/products/abc/quote", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "POST /api/v1/pricing/products/:id/quote", seen)
}

func TestProfiling_SkipPaths(t *testing.T) {
	var seen string
	router := newProfilingRouter(DefaultProfilingConfig(), &seen)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, seen)
}

func TestProfiling_Disabled(t *testing.T) {
	var seen string
	router := newProfilingRouter(ProfilingConfig{Enabled: false}, &seen)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/products/abc/quote", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, seen)
}
