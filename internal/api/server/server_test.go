package server

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgserver "github.com/DjordjeVuckovic/news-pulse/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{Port: "8080", CorsOrigins: []string{"https://dashboard.example"}}
}

func serve(s *Server, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthChecks(t *testing.T) {
	healthy := New(testConfig(), pkgserver.NewOkHealthChecker()).SetupHealthChecks("/health")
	rec := serve(healthy, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := pkgserver.CheckFunc(func(context.Context) bool { return false })
	unhealthy := New(testConfig(), down).SetupHealthChecks("/health")
	rec = serve(unhealthy, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_RequestLogSkipsHealthAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	s := New(testConfig(), pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics", prometheus.NewRegistry())
	s.Echo.GET("/api/news", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serve(s, http.MethodGet, "/health", nil)
	serve(s, http.MethodGet, "/metrics", nil)
	serve(s, http.MethodGet, "/api/news", nil)

	out := buf.String()
	assert.Contains(t, out, "uri=/api/news")
	assert.NotContains(t, out, "uri=/health")
	assert.NotContains(t, out, "uri=/metrics")
}

func TestServer_Middlewares(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupErrorHandler()

	s.Echo.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	s.Echo.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	t.Run("request id", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/ok", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
	})

	t.Run("recover", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/panic", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})

	t.Run("cors preflight", func(t *testing.T) {
		rec := serve(s, http.MethodOptions, "/ok", map[string]string{
			echo.HeaderOrigin:                     "https://dashboard.example",
			echo.HeaderAccessControlRequestMethod: http.MethodGet,
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://dashboard.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("not found uses error envelope", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
	})
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001

	s := New(cfg, pkgserver.NewOkHealthChecker()).SetupMiddlewares().SetupErrorHandler()
	s.Echo.GET("/ok", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	first := serve(s, http.MethodGet, "/ok", nil)
	second := serve(s, http.MethodGet, "/ok", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestServer_RateLimitIgnoresNonFinite(t *testing.T) {
	for _, rps := range []float64{math.NaN(), math.Inf(1)} {
		cfg := testConfig()
		cfg.RateLimitRPS = rps

		s := New(cfg, pkgserver.NewOkHealthChecker()).SetupMiddlewares().SetupErrorHandler()
		s.Echo.GET("/ok", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		for range 3 {
			assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/ok", nil).Code, "rps %v", rps)
		}
	}
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "news_pulse_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	s := New(testConfig(), pkgserver.NewOkHealthChecker()).SetupMetrics("/metrics", reg)
	rec := serve(s, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "news_pulse_test_total 1")
}

func TestServer_ContextCanceledOnStartFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Port = "-1"

	s := New(cfg, pkgserver.NewOkHealthChecker())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return")
	}

	select {
	case <-s.ShutdownSignal():
	default:
		t.Fatal("shutdown signal not closed")
	}
	assert.Error(t, s.Context().Err())
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("USE_HTTP2", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("RATE_LIMIT_RPS", "")
		t.Setenv("REQUEST_TIMEOUT", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, &Config{Port: "8080", CorsOrigins: []string{"*"}}, cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("USE_HTTP2", "true")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("RATE_LIMIT_RPS", "5")
		t.Setenv("REQUEST_TIMEOUT", "15s")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, &Config{
			Port:           "9090",
			UseHttp2:       true,
			CorsOrigins:    []string{"https://a.example", "https://b.example"},
			RateLimitRPS:   5,
			RequestTimeout: 15 * time.Second,
		}, cfg)
	})

	t.Run("non-finite rate limit", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		for _, rps := range []string{"NaN", "+Inf"} {
			t.Setenv("RATE_LIMIT_RPS", rps)
			_, err := LoadConfig()
			assert.Error(t, err, rps)
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		for _, port := range []string{"abc", "0", "70000"} {
			t.Setenv("PORT", port)
			_, err := LoadConfig()
			assert.Error(t, err, port)
		}
	})
}
