package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
	"github.com/DjordjeVuckovic/news-pulse/pkg/utils"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// RateLimitRPS limits inbound requests per client IP. Zero disables it.
	RateLimitRPS float64
	// RequestTimeout bounds a whole request. Zero disables it.
	RequestTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	useHttp2, err := env.Bool("USE_HTTP2", false)
	if err != nil {
		return nil, err
	}

	port := env.String("PORT", "8080")
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitAndTrim(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	rps, err := env.Float("RATE_LIMIT_RPS", 0)
	if err != nil {
		return nil, err
	}

	timeout, err := env.Duration("REQUEST_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           port,
		UseHttp2:       useHttp2,
		CorsOrigins:    origins,
		RateLimitRPS:   rps,
		RequestTimeout: timeout,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
