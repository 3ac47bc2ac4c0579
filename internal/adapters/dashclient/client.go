// Package dashclient fetches view payloads from the dashboard backend over HTTP.
package dashclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

// maxErrorBody caps how much of a failed response ends up in the error.
const maxErrorBody = 512

// Client implements ports.DashboardClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger
}

// Config holds the backend location and transport settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient replaces the default client, mainly for tests.
	HTTPClient *http.Client
	Logger     ports.Logger
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required for dashboard client")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid backend URL %q", ports.ErrConfigurationError, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// CoinData fetches /coin_data for symbol and timeframe.
func (c *Client) CoinData(ctx context.Context, symbol, timeframe string) (*domain.CoinPayload, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("tf", timeframe)

	var p domain.CoinPayload
	if err := c.getJSON(ctx, "/coin_data", q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ChartData fetches /chart_data.
func (c *Client) ChartData(ctx context.Context) (*domain.PnlPayload, error) {
	var p domain.PnlPayload
	if err := c.getJSON(ctx, "/chart_data", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Assets fetches /assets_usd.
func (c *Client) Assets(ctx context.Context) (*domain.AssetSnapshot, error) {
	var s domain.AssetSnapshot
	if err := c.getJSON(ctx, "/assets_usd", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request [%s]: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return fmt.Errorf("HTTP request failed [%s]: %w: %w", path, ports.ErrTimeout, err)
		}
		return fmt.Errorf("HTTP request failed [%s]: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug(ctx, "Backend returned non-success status", map[string]interface{}{
			"path":   path,
			"status": resp.StatusCode,
		})
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("API error [%s]: %w: %w: %s - %s", path, ports.ErrBadStatus, ports.ErrNotFound, resp.Status, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("API error [%s]: %w: %s - %s", path, ports.ErrBadStatus, resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON parse error [%s]: %w: %w", path, ports.ErrDecode, err)
	}
	return nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
