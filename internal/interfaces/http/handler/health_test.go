package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func okCheck(name string) HealthCheck {
	return HealthCheck{Name: name, Check: func(context.Context) error { return nil }}
}

func serveHealth(t *testing.T, h *HealthHandler, log *zap.Logger) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.GET("/health", h.Health)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHealthHandler_Healthy(t *testing.T) {
	h := NewHealthHandler(okCheck("database"), okCheck("redis"))

	w, resp := serveHealth(t, h, zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, resp.Checks)
	_, err := time.Parse(time.RFC3339, resp.Time)
	assert.NoError(t, err)
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewHealthHandler(
		HealthCheck{Name: "database", Check: func(context.Context) error { return errors.New("connection refused") }},
		okCheck("redis"),
	)

	w, resp := serveHealth(t, h, zap.New(core))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "error", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["redis"])

	failures := logs.FilterMessage("Health check failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "database", failures[0].ContextMap()["check"])
}

func TestHealthHandler_ChecksShareDeadline(t *testing.T) {
	var sawDeadline bool
	h := NewHealthHandler(HealthCheck{Name: "database", Check: func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	}})

	w, _ := serveHealth(t, h, zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sawDeadline)
}

func TestHealthHandler_NoChecks(t *testing.T) {
	w, resp := serveHealth(t, NewHealthHandler(), zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Empty(t, resp.Checks)
}
