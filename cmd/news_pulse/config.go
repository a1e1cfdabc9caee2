package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-pulse/internal/catalog"
	"github.com/DjordjeVuckovic/news-pulse/internal/generate"
	"github.com/DjordjeVuckovic/news-pulse/internal/twitter"
	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type NewsPulseConfig struct {
	Catalog       *catalog.Catalog
	TwitterConfig twitter.Config
	GeminiConfig  generate.Config
	// SourceStatus is nil unless INCLUDE_SOURCE_STATUS is set.
	SourceStatus *bool
}

func (as *AppConfig) Load() (*NewsPulseConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_pulse/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	twitterCfg, err := twitter.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load twitter configuration from environment", "error", err)
		return nil, err
	}

	geminiCfg, err := generate.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load gemini configuration from environment", "error", err)
		return nil, err
	}
	if geminiCfg.APIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, prompt completion requests will fail")
	}

	cfg := &NewsPulseConfig{
		Catalog:       cat,
		TwitterConfig: *twitterCfg,
		GeminiConfig:  *geminiCfg,
	}

	if os.Getenv("INCLUDE_SOURCE_STATUS") != "" {
		include, err := env.Bool("INCLUDE_SOURCE_STATUS", false)
		if err != nil {
			return nil, err
		}
		cfg.SourceStatus = &include
	}

	return cfg, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if path := os.Getenv("CATALOG_PATH"); path != "" {
		cat, err = catalog.LoadFromFile(path)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if raw := os.Getenv("ON_UNKNOWN_TOPIC"); raw != "" {
		policy, err := catalog.ParseUnknownTopicPolicy(raw)
		if err != nil {
			return nil, err
		}
		cat, err = cat.WithUnknownTopicPolicy(policy)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Catalog loaded",
		"version", cat.Version(),
		"topics", len(cat.Topics()),
		"on_unknown_topic", cat.Policy().UnknownTopic.String(),
	)
	return cat, nil
}
