// Package main News Pulse API
// @title News Pulse API
// @version 1.0
// @description Topical aggregation of the latest original posts from curated news accounts
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/news-pulse/docs"
	"github.com/DjordjeVuckovic/news-pulse/internal/aggregate"
	"github.com/DjordjeVuckovic/news-pulse/internal/api/server"
	"github.com/DjordjeVuckovic/news-pulse/internal/generate"
	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
	"github.com/DjordjeVuckovic/news-pulse/internal/query"
	"github.com/DjordjeVuckovic/news-pulse/internal/router"
	"github.com/DjordjeVuckovic/news-pulse/internal/twitter"
	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
	pkgserver "github.com/DjordjeVuckovic/news-pulse/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	slog.SetLogLoggerLevel(env.LogLevel("LOG_LEVEL"))

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(reg)

	twitterClient, err := twitter.NewClientFromConfig(&cfg.TwitterConfig)
	if err != nil {
		slog.Error("Failed to create twitter client", "error", err)
		os.Exit(1)
	}

	orchestrator := aggregate.NewOrchestrator(twitterClient, query.FromCatalog(cfg.Catalog),
		aggregate.WithMaxConcurrency(cfg.TwitterConfig.MaxConcurrency),
		aggregate.WithFetchMetrics(recorder),
	)

	serviceOpts := []aggregate.ServiceOption{aggregate.WithMetrics(recorder)}
	if cfg.SourceStatus != nil {
		serviceOpts = append(serviceOpts, aggregate.WithSourceStatus(*cfg.SourceStatus))
	}
	aggregator := aggregate.NewService(cfg.Catalog, orchestrator, serviceOpts...)

	gemini, err := generate.NewClient(&cfg.GeminiConfig)
	if err != nil {
		slog.Error("Failed to create gemini client", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.All(
		pkgserver.NewOkHealthChecker(),
		pkgserver.CheckFunc(func(context.Context) bool {
			return len(cfg.Catalog.Topics()) > 0
		}),
	)

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*").
		SetupMetrics("/metrics", reg)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "News Pulse API is running")
	})

	router.NewNewsRouter(s.Echo, aggregator).Bind()
	router.NewGenerateRouter(s.Echo, gemini).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
