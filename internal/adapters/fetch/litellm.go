package fetch

import (
	"context"
	"net/http"
	"time"
)

// LiteLLMClient downloads the LiteLLM model price map, published as a single
// JSON document rather than an API endpoint.
type LiteLLMClient struct {
	url        string
	httpClient *http.Client
}

// LiteLLMOption is a functional option for configuring the client.
type LiteLLMOption func(*LiteLLMClient)

// WithLiteLLMURL sets a custom document URL.
func WithLiteLLMURL(url string) LiteLLMOption {
	return func(c *LiteLLMClient) {
		c.url = url
	}
}

// WithLiteLLMHTTPClient sets a custom HTTP client.
func WithLiteLLMHTTPClient(client *http.Client) LiteLLMOption {
	return func(c *LiteLLMClient) {
		c.httpClient = client
	}
}

// WithLiteLLMTimeout sets the HTTP client timeout.
func WithLiteLLMTimeout(timeout time.Duration) LiteLLMOption {
	return func(c *LiteLLMClient) {
		c.httpClient.Timeout = timeout
	}
}

// NewLiteLLMClient creates a new LiteLLM client.
func NewLiteLLMClient(opts ...LiteLLMOption) *LiteLLMClient {
	c := &LiteLLMClient{
		url: DefaultLiteLLMURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the raw price map document.
func (c *LiteLLMClient) Fetch(ctx context.Context) ([]byte, error) {
	return getJSON(ctx, c.httpClient, c.url)
}
