package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthCheck(t *testing.T, components map[string]Pinger) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", NewHealthController(components).HealthCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Data
}

func TestHealthCheck(t *testing.T) {
	up := pingFunc(func(ctx context.Context) error { return nil })
	down := pingFunc(func(ctx context.Context) error { return errors.New("refused") })

	code, data := healthCheck(t, map[string]Pinger{"results": up, "sessions": up})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", data["status"])

	code, data = healthCheck(t, map[string]Pinger{"results": down, "sessions": up})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, map[string]interface{}{"results": "down", "sessions": "up"}, data["components"])
}
