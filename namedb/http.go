package namedb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/c360studio/entity-analyzer/ontology"
)

// maxErrorBodySize bounds how much of a non-200 response body is read
// into an error message.
const maxErrorBodySize = 4096

// HTTPClient is the production Client: a JSON/HTTP adapter over a NameDB
// service endpoint, following gatherers.GraphGatherer's shape (fixed
// *http.Client timeout, context-aware requests, JSON decode).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient returns a NameDB client pointed at baseURL with the given
// per-call timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPClient{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

type lookupRequest struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}

type lookupResponse struct {
	EntityID  string   `json:"entity_id"`
	Caption   string   `json:"caption"`
	Score     float64  `json:"score"`
	Names     []string `json:"names"`
	Schemata  []string `json:"schemata"`
	Countries []string `json:"countries"`
	Found     bool     `json:"found"`
}

func (c *HTTPClient) Lookup(ctx context.Context, name string, threshold float64) (*LookupResult, error) {
	var resp lookupResponse
	if err := c.post(ctx, "/lookup", lookupRequest{Name: name, Threshold: threshold}, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, nil
	}
	schemata := make([]ontology.Schema, 0, len(resp.Schemata))
	for _, s := range resp.Schemata {
		schemata = append(schemata, ontology.Schema(s))
	}
	return &LookupResult{
		EntityID:  resp.EntityID,
		Caption:   resp.Caption,
		Score:     resp.Score,
		Names:     resp.Names,
		Schemata:  schemata,
		Countries: resp.Countries,
	}, nil
}

type validateRequest struct {
	Name string `json:"name"`
	Tag  string `json:"tag,omitempty"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

func (c *HTTPClient) ValidateName(ctx context.Context, name string, tag ontology.Tag) (bool, error) {
	var resp validateResponse
	if err := c.post(ctx, "/validate", validateRequest{Name: name, Tag: string(tag)}, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

type predictRequest struct {
	Name string `json:"name"`
}

type predictResponse struct {
	Predictions []struct {
		NERTag string  `json:"ner_tag"`
		Score  float64 `json:"score"`
	} `json:"predictions"`
}

func (c *HTTPClient) PredictSchema(ctx context.Context, name string) ([]SchemaPrediction, error) {
	var resp predictResponse
	if err := c.post(ctx, "/predict-schema", predictRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	out := make([]SchemaPrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, SchemaPrediction{NERTag: ontology.Tag(p.NERTag), Score: p.Score})
	}
	return out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("namedb: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("namedb: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("namedb: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("namedb: %s returned %d: %s", path, resp.StatusCode, errBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("namedb: decode %s response: %w", path, err)
	}
	return nil
}
