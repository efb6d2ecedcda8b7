package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

type instagramAccountFeed struct {
	Data []struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		FullName       string `json:"full_name"`
		ProfileURL     string `json:"profile_url"`
		FollowersCount int64  `json:"followers_count"`
		Category       string `json:"category"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next,omitempty"`
	} `json:"paging"`
}

type instagramMediaFeed struct {
	Data []struct {
		ID            string `json:"id"`
		MediaType     string `json:"media_type"`
		Permalink     string `json:"permalink"`
		Timestamp     string `json:"timestamp"`
		LikeCount     int64  `json:"like_count"`
		CommentsCount int64  `json:"comments_count"`
		PlayCount     int64  `json:"play_count"`
		ShareCount    int64  `json:"share_count"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next,omitempty"`
	} `json:"paging"`
}

const maxInstagramPages = 10

func (c *Client) discoverInstagram(ctx context.Context, niche string) ([]benchmark.CandidateAccount, error) {
	processed := make(map[string]struct{})

	var candidates []benchmark.CandidateAccount
	next := ""

	for page := 0; page < maxInstagramPages; page++ {
		apiString := fmt.Sprintf("%s/v1/instagram/accounts?niche=%s", c.baseURL, url.QueryEscape(niche))
		if next != "" {
			apiString = next
		}

		var feed instagramAccountFeed
		if err := c.getJSON(ctx, apiString, &feed); err != nil {
			return candidates, err
		}

		for _, item := range feed.Data {
			if _, exists := processed[item.ID]; exists {
				continue
			}
			processed[item.ID] = struct{}{}

			name := item.FullName
			if name == "" {
				name = item.Username
			}

			candidates = append(candidates, benchmark.CandidateAccount{
				ExternalAccountID: item.ID,
				DisplayName:       name,
				ProfileURL:        item.ProfileURL,
				FollowerCount:     item.FollowersCount,
				Category:          item.Category,
			})
		}

		if feed.Paging.Next == "" {
			break
		}
		next = feed.Paging.Next
	}

	return candidates, nil
}

func (c *Client) fetchInstagramContent(ctx context.Context, accountID string) ([]benchmark.ContentItem, error) {
	var items []benchmark.ContentItem
	next := ""

	for page := 0; page < maxInstagramPages; page++ {
		apiString := fmt.Sprintf("%s/v1/instagram/accounts/%s/media", c.baseURL, url.PathEscape(accountID))
		if next != "" {
			apiString = next
		}

		var feed instagramMediaFeed
		if err := c.getJSON(ctx, apiString, &feed); err != nil {
			return items, err
		}

		for _, media := range feed.Data {
			timeParse, err := time.Parse("2006-01-02T15:04:05-0700", media.Timestamp)
			if err != nil {
				timeParse = time.Now()
			}

			contentType := "post"
			if media.MediaType == "VIDEO" || media.MediaType == "REELS" {
				contentType = "reel"
			}

			raw, _ := json.Marshal(media)

			items = append(items, benchmark.ContentItem{
				ContentID:        media.ID,
				ContentType:      contentType,
				URL:              media.Permalink,
				ContentCreatedAt: timeParse,
				Likes:            media.LikeCount,
				Comments:         media.CommentsCount,
				Views:            media.PlayCount,
				Shares:           media.ShareCount,
				RawMetrics:       raw,
			})
		}

		if feed.Paging.Next == "" {
			break
		}
		next = feed.Paging.Next
	}

	return items, nil
}
