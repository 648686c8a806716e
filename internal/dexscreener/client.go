// Package dexscreener is the market-data collaborator: an HTTP client
// for a DexScreener-compatible pair search API.
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dexwatch/internal/domain"
	"dexwatch/internal/solana"
)

// Default configuration values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
)

// Client fetches pair records from the market-data feed.
type Client struct {
	endpoint   string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new market-data client.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches pairs matching the chain query. Solana-chain records
// with an implausible pair address are dropped at this boundary so the
// classifier never sees garbage identifiers.
func (c *Client) Search(ctx context.Context, chain string) ([]*domain.PairRecord, error) {
	reqURL := fmt.Sprintf("%s/search?q=%s", c.endpoint, url.QueryEscape(chain))

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("search pairs: %w", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	records := make([]*domain.PairRecord, 0, len(resp.Pairs))
	for i := range resp.Pairs {
		rec := resp.Pairs[i].toDomain()
		if rec.PairAddress == "" {
			continue
		}
		if rec.ChainID == "solana" && !solana.ValidAddress(rec.PairAddress) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// get performs a GET with retries on transport errors and 5xx/429.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("http status %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", c.maxRetries+1, lastErr)
}
