package middleware

import (
	"context"
	"strings"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled   bool
	SkipPaths []string
}

// DefaultProfilingConfig returns default profiling middleware configuration.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:   true,
		SkipPaths: []string{"/health", "/api/v1/health"},
	}
}

// Profiling runs the rest of the chain under a pprof "operation" label of the
// form "GET /api/v1/pricing/catalog", so CPU samples can be split per route.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if _, ok := skip[c.Request.URL.Path]; ok || route == "" {
			c.Next()
			return
		}

		telemetry.Profile(c.Request.Context(), operationLabel(c.Request.Method, route), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func operationLabel(method, route string) string {
	var b strings.Builder
	b.Grow(len(method) + len(route) + 1)
	b.WriteString(method)
	b.WriteByte(' ')
	b.WriteString(route)
	return b.String()
}
