package handlers

import (
	"time"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

type TriggerBenchmarkRequest struct {
	CreatorID string `json:"creator_id" binding:"required"`
	Niche     string `json:"niche"`
	Force     bool   `json:"force"`
}

type PlatformStateResponse struct {
	Status    string                    `json:"status"`
	Refs      []benchmark.CompetitorRef `json:"competitor_refs,omitempty"`
	Insight   *benchmark.Insight        `json:"insight,omitempty"`
	UpdatedAt string                    `json:"updated_at"`
}

type CompetitorProfileResponse struct {
	Platform          string `json:"platform"`
	ExternalAccountID string `json:"external_account_id"`
	DisplayName       string `json:"display_name"`
	ProfileURL        string `json:"profile_url"`
	FollowerCount     int64  `json:"follower_count"`
	Category          string `json:"category,omitempty"`
	FetchedAt         string `json:"fetched_at"`
}

type CompetitorContentResponse struct {
	Platform         string `json:"platform"`
	ProfileKey       string `json:"profile_key"`
	ContentID        string `json:"content_id"`
	ContentType      string `json:"content_type"`
	URL              string `json:"url"`
	ContentCreatedAt string `json:"content_created_at"`
	Likes            int64  `json:"likes"`
	Comments         int64  `json:"comments"`
	Views            int64  `json:"views,omitempty"`
	Shares           int64  `json:"shares,omitempty"`
	DurationSeconds  int64  `json:"duration_seconds,omitempty"`
}

type BenchmarkRunResponse struct {
	CreatorID string                           `json:"creator_id"`
	Niche     string                           `json:"niche,omitempty"`
	Status    string                           `json:"status"`
	Epoch     int64                            `json:"run_epoch"`
	Platforms map[string]PlatformStateResponse `json:"platforms"`
	Profiles  []CompetitorProfileResponse      `json:"competitor_profiles"`
	Content   []CompetitorContentResponse      `json:"competitor_content"`
	StartedAt string                           `json:"started_at"`
	UpdatedAt string                           `json:"updated_at"`
}

func toBenchmarkRunResponse(view *benchmark.RunView) BenchmarkRunResponse {
	run := view.Run

	platforms := make(map[string]PlatformStateResponse, len(run.Platforms))
	for platform, st := range run.Platforms {
		platforms[string(platform)] = PlatformStateResponse{
			Status:    string(st.Status),
			Refs:      st.Refs,
			Insight:   st.Insight,
			UpdatedAt: st.UpdatedAt.Format(time.RFC3339),
		}
	}

	profiles := make([]CompetitorProfileResponse, 0, len(view.Profiles))
	for _, p := range view.Profiles {
		profiles = append(profiles, CompetitorProfileResponse{
			Platform:          string(p.Platform),
			ExternalAccountID: p.ExternalAccountID,
			DisplayName:       p.DisplayName,
			ProfileURL:        p.ProfileURL,
			FollowerCount:     p.FollowerCount,
			Category:          p.Category,
			FetchedAt:         p.FetchedAt.Format(time.RFC3339),
		})
	}

	content := make([]CompetitorContentResponse, 0, len(view.Content))
	for _, c := range view.Content {
		content = append(content, CompetitorContentResponse{
			Platform:         string(c.Platform),
			ProfileKey:       c.ProfileKey,
			ContentID:        c.ContentID,
			ContentType:      c.ContentType,
			URL:              c.URL,
			ContentCreatedAt: c.ContentCreatedAt.Format(time.RFC3339),
			Likes:            c.Likes,
			Comments:         c.Comments,
			Views:            c.Views,
			Shares:           c.Shares,
			DurationSeconds:  c.DurationSeconds,
		})
	}

	return BenchmarkRunResponse{
		CreatorID: run.CreatorID,
		Niche:     run.Niche,
		Status:    string(run.Overall),
		Epoch:     run.Epoch,
		Platforms: platforms,
		Profiles:  profiles,
		Content:   content,
		StartedAt: run.StartedAt.Format(time.RFC3339),
		UpdatedAt: run.UpdatedAt.Format(time.RFC3339),
	}
}
