package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/dto"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewAuthedRouter returns a test-mode engine whose requests carry tenantID and
// userID the way the JWT middleware sets them. A nil tenant leaves requests
// unauthenticated.
func NewAuthedRouter(tenantID, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(func(c *gin.Context) {
		if tenantID != uuid.Nil {
			c.Set(middleware.JWTTenantIDKey, tenantID.String())
			c.Set(middleware.JWTUserIDKey, userID.String())
		}
		c.Next()
	})
	return router
}

// PerformJSON sends a request with body encoded as JSON. A string body is sent verbatim.
func PerformJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// DecodeResponse unmarshals the standard envelope. When data is non-nil the
// envelope's data field is decoded into it.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder, data any) dto.Response {
	t.Helper()

	var raw struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Response
}
