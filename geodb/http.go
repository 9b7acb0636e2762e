package geodb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxErrorBodySize = 4096

// HTTPClient is the production Client: a JSON/HTTP adapter over a GeoDB
// service endpoint.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient returns a GeoDB client pointed at baseURL with the given
// per-call timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPClient{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

type tagLocationsRequest struct {
	Name string `json:"name"`
}

type tagLocationsResponse struct {
	Matches []struct {
		Name        string `json:"name"`
		CountryCode string `json:"country_code"`
	} `json:"matches"`
}

func (c *HTTPClient) TagLocations(ctx context.Context, name string) ([]LocationMatch, error) {
	payload, err := json.Marshal(tagLocationsRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("geodb: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tag-locations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("geodb: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geodb: request tag-locations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("geodb: tag-locations returned %d: %s", resp.StatusCode, errBody)
	}

	var out tagLocationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("geodb: decode tag-locations response: %w", err)
	}

	matches := make([]LocationMatch, 0, len(out.Matches))
	for _, m := range out.Matches {
		matches = append(matches, LocationMatch{Name: m.Name, CountryCode: m.CountryCode})
	}
	return matches, nil
}
