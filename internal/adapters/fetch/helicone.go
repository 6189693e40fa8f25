package fetch

import (
	"context"
	"net/http"
	"time"
)

// HeliconeClient downloads the Helicone model cost export.
type HeliconeClient struct {
	baseURL    string
	httpClient *http.Client
}

// HeliconeOption is a functional option for configuring the client.
type HeliconeOption func(*HeliconeClient)

// WithHeliconeBaseURL sets a custom base URL.
func WithHeliconeBaseURL(url string) HeliconeOption {
	return func(c *HeliconeClient) {
		c.baseURL = url
	}
}

// WithHeliconeHTTPClient sets a custom HTTP client.
func WithHeliconeHTTPClient(client *http.Client) HeliconeOption {
	return func(c *HeliconeClient) {
		c.httpClient = client
	}
}

// WithHeliconeTimeout sets the HTTP client timeout.
func WithHeliconeTimeout(timeout time.Duration) HeliconeOption {
	return func(c *HeliconeClient) {
		c.httpClient.Timeout = timeout
	}
}

// NewHeliconeClient creates a new Helicone client.
func NewHeliconeClient(opts ...HeliconeOption) *HeliconeClient {
	c := &HeliconeClient{
		baseURL: DefaultHeliconeBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the raw cost export payload.
func (c *HeliconeClient) Fetch(ctx context.Context) ([]byte, error) {
	return getJSON(ctx, c.httpClient, c.baseURL+heliconeCostsPath)
}
