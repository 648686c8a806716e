// Package rugcheck is the safety-report collaborator. Report fetch
// failures are not errors to the classifier: a missing report is an
// unsafe verdict, never a skip.
package rugcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dexwatch/internal/domain"
)

// DefaultTimeout bounds one report fetch.
const DefaultTimeout = 15 * time.Second

// Client fetches safety reports for token addresses.
type Client struct {
	endpoint string
	client   *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new safety-report client.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report fetches the safety report for an address. Any failure returns
// the zero report, which fails closed to unsafe downstream.
func (c *Client) Report(ctx context.Context, address string) (domain.SafetyReport, error) {
	reqURL := fmt.Sprintf("%s/%s/report", c.endpoint, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.SafetyReport{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.SafetyReport{}, fmt.Errorf("fetch safety report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.SafetyReport{}, fmt.Errorf("safety report status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.SafetyReport{}, fmt.Errorf("read safety report: %w", err)
	}

	var report domain.SafetyReport
	if err := json.Unmarshal(body, &report); err != nil {
		return domain.SafetyReport{}, fmt.Errorf("decode safety report: %w", err)
	}
	return report, nil
}
