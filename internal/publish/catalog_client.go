package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPCatalogClient talks to the external catalog service over JSON/HTTP.
// The service is an untrusted network boundary, so every call carries a
// timeout regardless of the incoming context.
type HTTPCatalogClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPCatalogClient builds a client for the given base URL.
func NewHTTPCatalogClient(baseURL string) *HTTPCatalogClient {
	return &HTTPCatalogClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type createProductResponse struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// CreateProduct POSTs the materialized product and returns the catalog id.
func (c *HTTPCatalogClient) CreateProduct(ctx context.Context, p MaterializedProduct) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode product: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/products", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	var out createProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode catalog response: %w", err)
	}
	if resp.StatusCode >= 400 || out.Error != "" {
		return "", fmt.Errorf("catalog rejected product (status %d): %s", resp.StatusCode, out.Error)
	}
	if out.ID == "" {
		return "", fmt.Errorf("catalog returned no product id")
	}
	return out.ID, nil
}
