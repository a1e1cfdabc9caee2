// Package generate proxies prompt completions to the Gemini API.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
)

// MissingAPIKeyMessage is the client-facing text for ErrMissingAPIKey.
const MissingAPIKeyMessage = "Server missing GEMINI_API_KEY"

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

type ClientOption func(*Client)

type Client struct {
	base   url.URL
	model  string
	apiKey string
	http   *http.Client
}

func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	client := &Client{
		base:   *base,
		model:  cfg.Model,
		apiKey: cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if client.model == "" {
		client.model = DefaultModel
	}
	if client.http.Timeout <= 0 {
		client.http.Timeout = DefaultTimeout
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

// Generate posts payload to generateContent and returns the upstream JSON.
// Non-2xx responses yield an *apperr.UpstreamError carrying the raw body.
func (c *Client) Generate(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqURL := c.base.JoinPath("v1beta", "models", c.model+":generateContent")
	q := reqURL.Query()
	q.Set("key", c.apiKey)
	reqURL.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("Gemini API error", "status", resp.StatusCode, "body", string(respBody))
		return nil, apperr.NewUpstream("Gemini API error", resp.StatusCode, string(respBody))
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("gemini returned invalid JSON")
	}
	return respBody, nil
}
