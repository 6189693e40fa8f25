// Package fetch provides HTTP clients that download raw pricing payloads
// from the supported catalog providers. Clients return the raw JSON bytes;
// parsing belongs to the catalog adapters.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default provider endpoints.
const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai"
	DefaultHeliconeBaseURL   = "https://www.helicone.ai"
	DefaultLiteLLMURL        = "https://raw.githubusercontent.com/BerriAI/litellm/main/model_prices_and_context_window.json"

	openRouterModelsPath = "/api/v1/models"
	heliconeCostsPath    = "/api/llm-costs"

	defaultTimeout = 30 * time.Second
)

// maxPayloadSize caps catalog downloads; the LiteLLM price map is the
// largest at a few megabytes.
const maxPayloadSize = 64 << 20

// getJSON performs a GET request and returns the response body bytes.
func getJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
