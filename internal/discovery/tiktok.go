package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

type tiktokAccountFeed struct {
	Accounts []struct {
		ID            string `json:"id"`
		UniqueID      string `json:"unique_id"`
		Nickname      string `json:"nickname"`
		FollowerCount int64  `json:"follower_count"`
		Category      string `json:"category"`
	} `json:"accounts"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

type tiktokVideoFeed struct {
	Videos []struct {
		ID           string `json:"id"`
		CreateTime   int64  `json:"create_time"`
		ShareURL     string `json:"share_url"`
		DiggCount    int64  `json:"digg_count"`
		CommentCount int64  `json:"comment_count"`
		PlayCount    int64  `json:"play_count"`
		ShareCount   int64  `json:"share_count"`
		Duration     int64  `json:"duration"`
	} `json:"videos"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

const maxTikTokPages = 10

func (c *Client) discoverTikTok(ctx context.Context, niche string) ([]benchmark.CandidateAccount, error) {
	processed := make(map[string]struct{})

	var candidates []benchmark.CandidateAccount
	cursor := ""

	for page := 0; page < maxTikTokPages; page++ {
		apiString := fmt.Sprintf("%s/v1/tiktok/accounts?niche=%s", c.baseURL, url.QueryEscape(niche))
		if cursor != "" {
			apiString += "&cursor=" + url.QueryEscape(cursor)
		}

		var feed tiktokAccountFeed
		if err := c.getJSON(ctx, apiString, &feed); err != nil {
			return candidates, err
		}

		for _, account := range feed.Accounts {
			if _, exists := processed[account.ID]; exists {
				continue
			}
			processed[account.ID] = struct{}{}

			candidates = append(candidates, benchmark.CandidateAccount{
				ExternalAccountID: account.ID,
				DisplayName:       account.Nickname,
				ProfileURL:        "https://www.tiktok.com/@" + account.UniqueID,
				FollowerCount:     account.FollowerCount,
				Category:          account.Category,
			})
		}

		if !feed.HasMore || feed.Cursor == "" {
			break
		}
		cursor = feed.Cursor
	}

	return candidates, nil
}

func (c *Client) fetchTikTokContent(ctx context.Context, accountID string) ([]benchmark.ContentItem, error) {
	var items []benchmark.ContentItem
	cursor := ""

	for page := 0; page < maxTikTokPages; page++ {
		apiString := fmt.Sprintf("%s/v1/tiktok/accounts/%s/videos", c.baseURL, url.PathEscape(accountID))
		if cursor != "" {
			apiString += "?cursor=" + url.QueryEscape(cursor)
		}

		var feed tiktokVideoFeed
		if err := c.getJSON(ctx, apiString, &feed); err != nil {
			return items, err
		}

		for _, video := range feed.Videos {
			raw, _ := json.Marshal(video)

			items = append(items, benchmark.ContentItem{
				ContentID:        video.ID,
				ContentType:      "video",
				URL:              video.ShareURL,
				ContentCreatedAt: time.Unix(video.CreateTime, 0),
				Likes:            video.DiggCount,
				Comments:         video.CommentCount,
				Views:            video.PlayCount,
				Shares:           video.ShareCount,
				DurationSeconds:  video.Duration,
				RawMetrics:       raw,
			})
		}

		if !feed.HasMore || feed.Cursor == "" {
			break
		}
		cursor = feed.Cursor
	}

	return items, nil
}
