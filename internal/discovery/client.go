package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

// Client talks to the platform discovery collaborators. Instagram and TikTok
// go through the discovery service's JSON API; YouTube talks to the Data API
// directly when an API key is configured.
type Client struct {
	httpClient    http.Client
	baseURL       string
	youtubeAPIKey string
}

func NewClient(baseURL, youtubeAPIKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: http.Client{
			Timeout: timeout,
		},
		baseURL:       baseURL,
		youtubeAPIKey: youtubeAPIKey,
	}
}

func (c *Client) Discover(ctx context.Context, platform benchmark.Platform, niche string) ([]benchmark.CandidateAccount, error) {
	switch platform {
	case benchmark.PlatformInstagram:
		return c.discoverInstagram(ctx, niche)
	case benchmark.PlatformTikTok:
		return c.discoverTikTok(ctx, niche)
	case benchmark.PlatformYouTube:
		return c.discoverYouTube(ctx, niche)
	}
	return nil, fmt.Errorf("unsupported platform %q", platform)
}

func (c *Client) FetchContent(ctx context.Context, platform benchmark.Platform, accountID string) ([]benchmark.ContentItem, error) {
	switch platform {
	case benchmark.PlatformInstagram:
		return c.fetchInstagramContent(ctx, accountID)
	case benchmark.PlatformTikTok:
		return c.fetchTikTokContent(ctx, accountID)
	case benchmark.PlatformYouTube:
		return c.fetchYouTubeContent(ctx, accountID)
	}
	return nil, fmt.Errorf("unsupported platform %q", platform)
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discovery service returned %d: %s", resp.StatusCode, string(data))
	}

	return json.Unmarshal(data, out)
}
