package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/groove/internal/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := NewServer(context.Background(), NewServerParams{
		Config: &config.Config{
			Environment:     "development",
			MetricsHost:     "127.0.0.1",
			MetricsPort:     "0",
			Timezone:        "UTC",
			StoreBackend:    "memory",
			SnoozeMinutes:   15,
			RefreshInterval: config.Duration{Duration: time.Hour},
		},
	})
	require.NoError(t, err)
	return s
}

func TestServer_Router(t *testing.T) {
	s := newTestServer(t)
	router := s.routerSetup()

	testCases := []struct {
		name           string
		method         string
		path           string
		userAgent      string
		expectedStatus int
	}{
		{
			name:           "today",
			method:         http.MethodGet,
			path:           "/today",
			userAgent:      "test-agent",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "settings",
			method:         http.MethodGet,
			path:           "/settings",
			userAgent:      "groovectl/1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			path:           "/weather",
			userAgent:      "test-agent",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "cors rejected",
			method:         http.MethodGet,
			path:           "/today",
			userAgent:      "unknown-agent",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("User-Agent", tc.userAgent)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(
		s.metricsManager.CounterRequests.WithLabelValues(http.MethodGet, "404"),
	))
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := newTestServer(t)

	s.Serve(context.Background(), "127.0.0.1", 0)
	assert.Equal(t, float64(1), testutil.ToFloat64(s.metricsManager.GaugeLifeSignal))

	// the refresh loop runs once right away
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(s.metricsManager.CounterDailyRefreshes) == 1
	}, 5*time.Second, 10*time.Millisecond)

	s.GracefulShutdown()
	assert.Equal(t, float64(0), testutil.ToFloat64(s.metricsManager.GaugeLifeSignal))
	assert.Empty(t, s.notifier.Pending())
}
