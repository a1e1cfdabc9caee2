package twitter

import (
	"errors"
	"os"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

const (
	DefaultBaseURL = "https://api.twitterapi.io"
	DefaultTimeout = 10 * time.Second
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// RPS limits outbound searches per second across all requests. Zero
	// disables the limiter.
	RPS float64
	// MaxConcurrency caps in-flight searches per aggregation. Zero means one
	// per account.
	MaxConcurrency int
}

func LoadConfigFromEnv() (*Config, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	if apiKey == "" {
		return nil, errors.New("TWITTER_API_KEY environment variable not set")
	}

	timeout, err := env.Duration("TWITTER_TIMEOUT", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	rps, err := env.Float("TWITTER_RPS", 0)
	if err != nil {
		return nil, err
	}

	maxConcurrency, err := env.Int("TWITTER_MAX_CONCURRENCY", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		APIKey:         apiKey,
		BaseURL:        env.String("TWITTER_API_BASE_URL", DefaultBaseURL),
		Timeout:        timeout,
		RPS:            rps,
		MaxConcurrency: maxConcurrency,
	}, nil
}
