package observability

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhire/profile-engine/internal/config"
)

func TestSetupLogger(t *testing.T) {
	lg := SetupLogger(config.Config{AppEnv: "dev", OTELServiceName: "profile-engine"})
	require.NotNil(t, lg)
	assert.True(t, lg.Enabled(t.Context(), slog.LevelDebug), "dev enables debug")

	lg = SetupLogger(config.Config{AppEnv: "prod"})
	assert.False(t, lg.Enabled(t.Context(), slog.LevelDebug), "prod stays at info")
}

func TestSetupTracing_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, shutdown)
}

func TestHTTPMetricsMiddleware_PassesThrough(t *testing.T) {
	var called bool
	h := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile/show", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
