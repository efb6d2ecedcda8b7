package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

// Client calls the insight summarization service. Callers treat any failure
// as "no insight", so errors here only ever surface in logs.
type Client struct {
	httpClient http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (c *Client) Summarize(ctx context.Context, req benchmark.SummaryRequest) (*benchmark.Insight, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/insights", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insight service returned %d: %s", resp.StatusCode, string(data))
	}

	var insight benchmark.Insight
	if err := json.Unmarshal(data, &insight); err != nil {
		return nil, err
	}

	if insight.Positioning == "" {
		// The service answered but produced nothing usable.
		return nil, nil
	}

	if insight.GeneratedAt.IsZero() {
		insight.GeneratedAt = time.Now()
	}

	return &insight, nil
}
