// AngelaMos | 2026
// handler_test.go

package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hbnb/internal/health"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, h *health.Handler, path string) (int, health.ReadinessResponse) {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body health.ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestReadinessWithoutDependencies(t *testing.T) {
	code, body := serve(t, health.NewHandler().Register("database", nil), "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	assert.Empty(t, body.Checks)
}

func TestReadinessReportsFailingDependency(t *testing.T) {
	h := health.NewHandler().
		Register("database", pingFunc(func(context.Context) error { return nil })).
		Register("redis", pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }))

	code, body := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "database", body.Checks[0].Name)
	assert.True(t, body.Checks[0].Healthy)
	assert.Equal(t, "redis", body.Checks[1].Name)
	assert.False(t, body.Checks[1].Healthy)
	assert.Equal(t, "ping failed", body.Checks[1].Message)
}

func TestProbeStates(t *testing.T) {
	h := health.NewHandler()

	code, body := serve(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)

	h.SetReady(false)
	code, body = serve(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", body.Status)

	h.SetShutdown(true)
	for _, path := range []string{"/livez", "/readyz"} {
		code, body = serve(t, h, path)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "shutting_down", body.Status)
	}
}
