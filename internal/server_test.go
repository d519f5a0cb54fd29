package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/weeklyreport/internal/activities"
	"github.com/2beens/weeklyreport/internal/config"
	"github.com/2beens/weeklyreport/internal/garmin"
	"github.com/2beens/weeklyreport/internal/report"
	"github.com/2beens/weeklyreport/internal/telemetry/metrics"
	"github.com/2beens/weeklyreport/pkg"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

type staticSource struct {
	raw []activities.RawActivity
}

func (s *staticSource) FetchActivities(context.Context, time.Time, time.Time) ([]activities.RawActivity, error) {
	return s.raw, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, _ := redismock.NewClientMock()
	metricsManager := metrics.NewTestManager()
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	return &Server{
		versionInfo: "test-version",
		config: &config.Config{
			ReportRateLimitPerMinute: 10,
			AllowedOrigins:           []string{"https://weekly.example.com"},
		},
		redisClient: db,
		reportService: report.NewService(
			activities.NewReporter(&staticSource{}, activities.FixedClock{Date: today}),
			nil,
			today.AddDate(0, 0, -30),
			metricsManager,
		),
		metricsManager: metricsManager,
		otelShutdown:   func() {},
	}
}

func TestServer_Root(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pkg.ContentType.Text, rr.Header().Get("Content-Type"))
	assert.Equal(t, "weekly report service, version: test-version", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(server.metricsManager.CounterRequests.WithLabelValues(http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(server.metricsManager.CounterRequests.WithLabelValues(http.MethodGet, "404")))
}

func TestServer_Root_GarminBreakerState(t *testing.T) {
	server := newTestServer(t)
	server.garminClient = garmin.NewClient(garmin.ClientParams{
		BaseURL: "http://127.0.0.1:0",
		Token:   "test-token",
	})
	router := server.routerSetup()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "weekly report service, version: test-version, garmin breaker: closed", rr.Body.String())
}

func TestServer_Cors(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://weekly.example.com")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://weekly.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Routes(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()

	for _, name := range []string{"root", "mcp", "weekly-report", "weekly-summary", "weekly-rollup", "weekly-week", "unknown"} {
		assert.NotNil(t, router.Get(name), name)
	}

	path, err := router.Get("weekly-week").URLPath("week", "2024-W02")
	require.NoError(t, err)
	assert.Equal(t, "/report/weekly/week/2024-W02", path.String())
}

func TestServer_ConnStateMetrics(t *testing.T) {
	server := newTestServer(t)

	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateActive)
	server.connStateMetrics(nil, http.StateClosed)

	assert.Equal(t, 1.0, testutil.ToFloat64(server.metricsManager.GaugeRequests))
}

func TestServer_GracefulShutdown_NotServing(t *testing.T) {
	server := newTestServer(t)
	server.metricsManager.GaugeLifeSignal.Set(1)

	server.GracefulShutdown()
	assert.Equal(t, 0.0, testutil.ToFloat64(server.metricsManager.GaugeLifeSignal))
}
