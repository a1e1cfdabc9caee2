// Package twitter is a client for the twitterapi.io advanced search endpoint.
package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/news-pulse/internal/post"
	"github.com/DjordjeVuckovic/news-pulse/internal/query"
	"golang.org/x/time/rate"
)

const (
	searchPath   = "/twitter/tweet/advanced_search"
	apiKeyHeader = "X-API-Key"

	// maxErrorBody bounds how much of a failed response is kept for logging.
	maxErrorBody = 512
)

var ErrMalformedResponse = errors.New("malformed search response")

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}

type ClientOption func(*Client)

type Client struct {
	base    url.URL
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	client := &Client{
		base:   *base,
		apiKey: apiKey,
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// NewClientFromConfig builds a client with the configured timeout and rate limit.
func NewClientFromConfig(cfg *Config) (*Client, error) {
	return NewClient(cfg.BaseURL, cfg.APIKey,
		WithTimeout(cfg.Timeout),
		WithRateLimit(cfg.RPS),
	)
}

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithRateLimit shares one token bucket between all searches made by the
// client. rps that is not a positive finite number disables limiting.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if !(rps > 0) || math.IsInf(rps, 1) {
			c.limiter = nil
			return
		}
		burst := int(math.Ceil(rps))
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// Search runs one advanced search. The response's post array may be named
// "tweets" or "data"; a response without either yields no posts.
func (c *Client) Search(ctx context.Context, q query.Query) ([]post.RawPost, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	reqURL := c.base.JoinPath(searchPath)
	reqURL.RawQuery = q.Values().Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set(apiKeyHeader, c.apiKey)
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(respBody, maxErrorBody)}
	}

	return decodeSearch(respBody)
}

func decodeSearch(body []byte) ([]post.RawPost, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, key := range []string{"tweets", "data"} {
		raw, ok := envelope[key]
		if !ok || string(raw) == "null" {
			continue
		}
		posts, err := post.DecodeBatch(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return posts, nil
	}

	return nil, nil
}

// truncate cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n]) + "..."
}
