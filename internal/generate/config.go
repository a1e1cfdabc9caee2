package generate

import (
	"os"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash-preview-09-2025"
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	// APIKey may be empty; requests then fail with ErrMissingAPIKey.
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func LoadConfigFromEnv() (*Config, error) {
	timeout, err := env.Duration("GEMINI_TIMEOUT", DefaultTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   env.String("GEMINI_MODEL", DefaultModel),
		BaseURL: env.String("GEMINI_BASE_URL", DefaultBaseURL),
		Timeout: timeout,
	}, nil
}
