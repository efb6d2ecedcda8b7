package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

const (
	maxYouTubeChannels = 12
	maxYouTubeVideos   = 25
)

func (c *Client) youtubeService(ctx context.Context) (*youtube.Service, error) {
	if c.youtubeAPIKey == "" {
		return nil, fmt.Errorf("youtube api key not configured")
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(c.youtubeAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return service, nil
}

func (c *Client) discoverYouTube(ctx context.Context, niche string) ([]benchmark.CandidateAccount, error) {
	service, err := c.youtubeService(ctx)
	if err != nil {
		return nil, err
	}

	searchResponse, err := service.Search.List([]string{"snippet"}).
		Q(niche).
		Type("channel").
		MaxResults(maxYouTubeChannels).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search channels: %w", err)
	}

	var channelIds []string
	for _, result := range searchResponse.Items {
		if result.Snippet.ChannelId != "" {
			channelIds = append(channelIds, result.Snippet.ChannelId)
		}
	}
	if len(channelIds) == 0 {
		return nil, nil
	}

	channelResponse, err := service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelIds...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel details: %w", err)
	}

	var candidates []benchmark.CandidateAccount
	for _, channel := range channelResponse.Items {
		var followers int64
		if channel.Statistics != nil {
			followers = int64(channel.Statistics.SubscriberCount)
		}
		candidates = append(candidates, benchmark.CandidateAccount{
			ExternalAccountID: channel.Id,
			DisplayName:       channel.Snippet.Title,
			ProfileURL:        "https://www.youtube.com/channel/" + channel.Id,
			FollowerCount:     followers,
		})
	}

	return candidates, nil
}

func (c *Client) fetchYouTubeContent(ctx context.Context, accountID string) ([]benchmark.ContentItem, error) {
	service, err := c.youtubeService(ctx)
	if err != nil {
		return nil, err
	}

	channelResponse, err := service.Channels.List([]string{"contentDetails"}).
		Id(accountID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel details: %w", err)
	}
	if len(channelResponse.Items) == 0 {
		return nil, nil
	}

	uploadsPlaylistId := channelResponse.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploadsPlaylistId == "" {
		return nil, nil
	}

	playlistResponse, err := service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(uploadsPlaylistId).
		MaxResults(maxYouTubeVideos).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	var videoIds []string
	publishedAt := make(map[string]time.Time)
	for _, item := range playlistResponse.Items {
		videoId := item.ContentDetails.VideoId
		if videoId == "" {
			continue
		}
		videoIds = append(videoIds, videoId)

		pubAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			pubAt = time.Now()
		}
		publishedAt[videoId] = pubAt
	}
	if len(videoIds) == 0 {
		return nil, nil
	}

	videoResponse, err := service.Videos.List([]string{"statistics", "contentDetails"}).
		Id(videoIds...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video stats: %w", err)
	}

	var items []benchmark.ContentItem
	for _, video := range videoResponse.Items {
		var likes, comments, views int64
		if video.Statistics != nil {
			likes = int64(video.Statistics.LikeCount)
			comments = int64(video.Statistics.CommentCount)
			views = int64(video.Statistics.ViewCount)
		}

		var duration int64
		if video.ContentDetails != nil {
			duration = parseISODuration(video.ContentDetails.Duration)
		}

		contentType := "video"
		if duration > 0 && duration <= 60 {
			contentType = "short"
		}

		raw, _ := json.Marshal(video.Statistics)

		items = append(items, benchmark.ContentItem{
			ContentID:        video.Id,
			ContentType:      contentType,
			URL:              "https://www.youtube.com/watch?v=" + video.Id,
			ContentCreatedAt: publishedAt[video.Id],
			Likes:            likes,
			Comments:         comments,
			Views:            views,
			DurationSeconds:  duration,
			RawMetrics:       raw,
		})
	}

	return items, nil
}

// parseISODuration converts the API's ISO 8601 durations (PT4M13S) into
// seconds. Anything unparseable comes back as 0.
func parseISODuration(value string) int64 {
	value = strings.TrimPrefix(value, "PT")
	if value == "" {
		return 0
	}

	var total, number int64
	for _, r := range value {
		if r >= '0' && r <= '9' {
			number = number*10 + int64(r-'0')
			continue
		}
		switch r {
		case 'H':
			total += number * 3600
		case 'M':
			total += number * 60
		case 'S':
			total += number
		default:
			if _, err := strconv.Atoi(string(r)); err != nil {
				return 0
			}
		}
		number = 0
	}
	return total
}
