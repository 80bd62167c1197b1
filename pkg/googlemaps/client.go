package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrZeroResults indicates the API returned no matches for the query.
var ErrZeroResults = errors.New("googlemaps: zero results")

// Client is the Google Maps web services client.
// It covers the Directions, Places, and Geocoding services.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a new Maps client with the given configuration.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
	}, nil
}

// get performs a GET against a Maps service path with the API key appended
// and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, path, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("googlemaps: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("googlemaps: failed to call %s API: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("googlemaps: %s API error %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("googlemaps: failed to decode %s response: %w", path, err)
	}

	return nil
}

// checkStatus maps the API-level status field to an error.
func checkStatus(service, status, errorMessage string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS":
		return ErrZeroResults
	default:
		if errorMessage != "" {
			return fmt.Errorf("googlemaps: %s status %s: %s", service, status, errorMessage)
		}
		return fmt.Errorf("googlemaps: %s status %s", service, status)
	}
}
