package fetch

import (
	"context"
	"net/http"
	"time"
)

// OpenRouterClient downloads the OpenRouter model list, which carries both
// pricing and context metadata.
type OpenRouterClient struct {
	baseURL    string
	httpClient *http.Client
}

// OpenRouterOption is a functional option for configuring the client.
type OpenRouterOption func(*OpenRouterClient)

// WithOpenRouterBaseURL sets a custom base URL.
func WithOpenRouterBaseURL(url string) OpenRouterOption {
	return func(c *OpenRouterClient) {
		c.baseURL = url
	}
}

// WithOpenRouterHTTPClient sets a custom HTTP client.
func WithOpenRouterHTTPClient(client *http.Client) OpenRouterOption {
	return func(c *OpenRouterClient) {
		c.httpClient = client
	}
}

// WithOpenRouterTimeout sets the HTTP client timeout.
func WithOpenRouterTimeout(timeout time.Duration) OpenRouterOption {
	return func(c *OpenRouterClient) {
		c.httpClient.Timeout = timeout
	}
}

// NewOpenRouterClient creates a new OpenRouter client.
func NewOpenRouterClient(opts ...OpenRouterOption) *OpenRouterClient {
	c := &OpenRouterClient{
		baseURL: DefaultOpenRouterBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the raw model list payload.
func (c *OpenRouterClient) Fetch(ctx context.Context) ([]byte, error) {
	return getJSON(ctx, c.httpClient, c.baseURL+openRouterModelsPath)
}
