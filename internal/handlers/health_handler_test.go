package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealthChecker struct {
	err         error
	called      bool
	hasDeadline bool
}

func (s *stubHealthChecker) HealthCheck(ctx context.Context) error {
	s.called = true
	_, s.hasDeadline = ctx.Deadline()
	return s.err
}

func TestHealthCheck_Healthy(t *testing.T) {
	checker := &stubHealthChecker{}
	handler := NewHealthCheckHandler(checker)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, handler.HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, checker.called)
	assert.True(t, checker.hasDeadline)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	handler := NewHealthCheckHandler(&stubHealthChecker{err: stderrors.New("dial tcp: connection refused")})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	c.Response().Header().Set("X-Trace-ID", "trace-health")

	require.NoError(t, handler.HealthCheck(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_003")
	assert.Contains(t, rec.Body.String(), "trace-health")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestHealthCheck_UnknownTrace(t *testing.T) {
	handler := NewHealthCheckHandler(&stubHealthChecker{err: stderrors.New("down")})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, handler.HealthCheck(c))

	assert.Contains(t, rec.Body.String(), `"trace_id":"unknown"`)
}
