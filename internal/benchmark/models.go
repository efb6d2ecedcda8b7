package benchmark

import (
	"encoding/json"
	"time"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

var AllPlatforms = []Platform{PlatformInstagram, PlatformTikTok, PlatformYouTube}

type OverallStatus string

const (
	OverallIdle             OverallStatus = "idle"
	OverallRunning          OverallStatus = "running"
	OverallCompleted        OverallStatus = "completed"
	OverallCompletedPartial OverallStatus = "completed_with_partial_data"
	OverallFailed           OverallStatus = "failed"
)

type PlatformStatus string

const (
	PlatformPending   PlatformStatus = "pending"
	PlatformRunning   PlatformStatus = "running"
	PlatformCompleted PlatformStatus = "completed"
	PlatformFailed    PlatformStatus = "failed"
)

// CompetitorRef points at a profile in the shared competitor store. Profiles
// are keyed globally, so a run only remembers which keys it discovered.
type CompetitorRef struct {
	Platform          Platform `json:"platform"`
	ExternalAccountID string   `json:"external_account_id"`
}

type Insight struct {
	Positioning         string    `json:"positioning"`
	Strengths           []string  `json:"strengths"`
	Weaknesses          []string  `json:"weaknesses"`
	RecommendedFormats  []string  `json:"recommended_formats"`
	PostingCadence      string    `json:"posting_cadence"`
	GrowthOpportunities []string  `json:"growth_opportunities"`
	GeneratedAt         time.Time `json:"generated_at"`
}

type PlatformState struct {
	Platform  Platform
	Status    PlatformStatus
	Refs      []CompetitorRef
	Insight   *Insight
	UpdatedAt time.Time
}

type Run struct {
	CreatorID string
	Niche     string
	Overall   OverallStatus
	Epoch     int64
	Platforms map[Platform]*PlatformState
	StartedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CandidateAccount struct {
	ExternalAccountID string
	DisplayName       string
	ProfileURL        string
	FollowerCount     int64
	Category          string
}

// ContentItem is what the discovery collaborator returns for one post/video.
type ContentItem struct {
	ContentID        string
	ContentType      string
	URL              string
	ContentCreatedAt time.Time
	Likes            int64
	Comments         int64
	Views            int64
	Shares           int64
	DurationSeconds  int64
	RawMetrics       json.RawMessage
}

type CompetitorProfile struct {
	Platform          Platform
	ExternalAccountID string
	DisplayName       string
	ProfileURL        string
	FollowerCount     int64
	Category          string
	FetchedAt         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CompetitorContent struct {
	Platform         Platform
	ProfileKey       string
	ContentID        string
	ContentType      string
	URL              string
	ContentCreatedAt time.Time
	Likes            int64
	Comments         int64
	Views            int64
	Shares           int64
	DurationSeconds  int64
	RawMetrics       json.RawMessage
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SummaryRequest carries the aggregate numbers the summarization service
// needs. SampleContent is bounded, never the full content set.
type SummaryRequest struct {
	Platform      Platform            `json:"platform"`
	ProfileCount  int                 `json:"profile_count"`
	ContentCount  int                 `json:"content_count"`
	AvgFollowers  int64               `json:"avg_followers"`
	SampleContent []CompetitorContent `json:"sample_content"`
}

// RunView is the reconciled view returned on status reads: the run itself
// plus the merged, deduplicated profile and content listings.
type RunView struct {
	Run      *Run
	Profiles []CompetitorProfile
	Content  []CompetitorContent
}
