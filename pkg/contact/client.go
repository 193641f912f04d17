package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is where the browser form posts its payload.
const DefaultEndpoint = "/.netlify/functions/contact-form"

// ErrSubmissionFailed wraps every failed delivery: transport errors and
// non-2xx responses alike.
var ErrSubmissionFailed = errors.New("contact: submission failed")

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client posts submissions to the relay endpoint. It sends exactly one
// request per Submit; there are no retries.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
}

var _ Submitter = (*Client)(nil)

// NewClient returns a client for endpoint (DefaultEndpoint when empty).
func NewClient(endpoint string, opts ...ClientOption) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{endpoint: endpoint, http: http.DefaultClient}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Resolve returns a copy whose relative endpoint is resolved against base
// (for example "https://example.org"). Absolute endpoints are kept.
func (c *Client) Resolve(base string) (*Client, error) {
	ref, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("contact: parse endpoint: %w", err)
	}
	if ref.IsAbs() {
		return c, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return nil, fmt.Errorf("contact: invalid base URL %q", base)
	}
	clone := *c
	clone.endpoint = baseURL.ResolveReference(ref).String()
	return &clone, nil
}

// Submit POSTs the JSON payload once. Any 2xx response is success.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("contact: encode submission: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d", ErrSubmissionFailed, resp.StatusCode)
	}
	return nil
}
