package benchmark

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/fluffyriot/peerbench/internal/database"
)

// SQLStore adapts the sqlc query layer to the engine's Store interface.
// Run state lives in one row per creator plus one row per platform, so two
// platform pipelines finishing at the same instant write disjoint rows
// instead of racing on a whole-record read-modify-write.
type SQLStore struct {
	q *database.Queries
}

func NewSQLStore(q *database.Queries) *SQLStore {
	return &SQLStore{q: q}
}

func (s *SQLStore) GetRun(ctx context.Context, creatorID string) (*Run, error) {
	row, err := s.q.GetBenchmarkRun(ctx, creatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	platformRows, err := s.q.ListBenchmarkRunPlatforms(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run platforms: %w", err)
	}

	run := &Run{
		CreatorID: row.CreatorID,
		Niche:     row.Niche,
		Overall:   OverallStatus(row.OverallStatus),
		Epoch:     row.RunEpoch,
		Platforms: make(map[Platform]*PlatformState, len(platformRows)),
		StartedAt: row.StartedAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	for _, pr := range platformRows {
		// Rows left over from a superseded run read as untouched platforms.
		if pr.RunEpoch != row.RunEpoch {
			continue
		}
		st := &PlatformState{
			Platform:  Platform(pr.Platform),
			Status:    PlatformStatus(pr.Status),
			UpdatedAt: pr.UpdatedAt,
		}
		if pr.CompetitorRefs.Valid {
			if err := json.Unmarshal(pr.CompetitorRefs.RawMessage, &st.Refs); err != nil {
				return nil, fmt.Errorf("failed to decode %s competitor refs: %w", pr.Platform, err)
			}
		}
		if pr.Insight.Valid {
			var insight Insight
			if err := json.Unmarshal(pr.Insight.RawMessage, &insight); err != nil {
				return nil, fmt.Errorf("failed to decode %s insight: %w", pr.Platform, err)
			}
			st.Insight = &insight
		}
		run.Platforms[st.Platform] = st
	}

	return run, nil
}

func (s *SQLStore) StartRun(ctx context.Context, creatorID, niche string) (*Run, error) {
	now := time.Now()
	row, err := s.q.StartBenchmarkRun(ctx, database.StartBenchmarkRunParams{
		CreatorID: creatorID,
		Niche:     niche,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	run := &Run{
		CreatorID: row.CreatorID,
		Niche:     row.Niche,
		Overall:   OverallStatus(row.OverallStatus),
		Epoch:     row.RunEpoch,
		Platforms: make(map[Platform]*PlatformState, len(AllPlatforms)),
		StartedAt: row.StartedAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	for _, platform := range AllPlatforms {
		err := s.q.ResetBenchmarkRunPlatform(ctx, database.ResetBenchmarkRunPlatformParams{
			CreatorID: creatorID,
			Platform:  string(platform),
			RunEpoch:  row.RunEpoch,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to reset %s platform state: %w", platform, err)
		}
		run.Platforms[platform] = &PlatformState{
			Platform:  platform,
			Status:    PlatformPending,
			UpdatedAt: now,
		}
	}

	return run, nil
}

func (s *SQLStore) UpdatePlatformStatus(ctx context.Context, creatorID string, platform Platform, epoch int64, status PlatformStatus) error {
	affected, err := s.q.UpdateBenchmarkRunPlatformStatus(ctx, database.UpdateBenchmarkRunPlatformStatusParams{
		CreatorID: creatorID,
		Platform:  string(platform),
		RunEpoch:  epoch,
		Status:    string(status),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleEpoch
	}
	return nil
}

func (s *SQLStore) SetPlatformRefs(ctx context.Context, creatorID string, platform Platform, epoch int64, refs []CompetitorRef) error {
	payload, err := json.Marshal(refs)
	if err != nil {
		return err
	}
	affected, err := s.q.SetBenchmarkRunPlatformRefs(ctx, database.SetBenchmarkRunPlatformRefsParams{
		CreatorID:      creatorID,
		Platform:       string(platform),
		RunEpoch:       epoch,
		CompetitorRefs: pqtype.NullRawMessage{RawMessage: payload, Valid: true},
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleEpoch
	}
	return nil
}

func (s *SQLStore) SetPlatformInsight(ctx context.Context, creatorID string, platform Platform, epoch int64, insight *Insight) error {
	payload, err := json.Marshal(insight)
	if err != nil {
		return err
	}
	affected, err := s.q.SetBenchmarkRunPlatformInsight(ctx, database.SetBenchmarkRunPlatformInsightParams{
		CreatorID: creatorID,
		Platform:  string(platform),
		RunEpoch:  epoch,
		Insight:   pqtype.NullRawMessage{RawMessage: payload, Valid: true},
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleEpoch
	}
	return nil
}

func (s *SQLStore) UpdateOverallStatus(ctx context.Context, creatorID string, status OverallStatus) error {
	return s.q.UpdateBenchmarkRunOverallStatus(ctx, database.UpdateBenchmarkRunOverallStatusParams{
		CreatorID:     creatorID,
		OverallStatus: string(status),
		UpdatedAt:     time.Now(),
	})
}

func (s *SQLStore) ListRunningCreators(ctx context.Context) ([]string, error) {
	return s.q.ListRunningBenchmarkRuns(ctx)
}

func (s *SQLStore) UpsertProfile(ctx context.Context, profile CompetitorProfile) error {
	now := time.Now()
	category := sql.NullString{}
	if profile.Category != "" {
		category = sql.NullString{String: profile.Category, Valid: true}
	}
	// created_at is only honored on first insert; rediscovery refreshes the
	// mutable columns in place.
	_, err := s.q.UpsertCompetitorProfile(ctx, database.UpsertCompetitorProfileParams{
		ID:                uuid.New(),
		Platform:          string(profile.Platform),
		ExternalAccountID: profile.ExternalAccountID,
		DisplayName:       profile.DisplayName,
		ProfileUrl:        profile.ProfileURL,
		FollowerCount:     profile.FollowerCount,
		Category:          category,
		FetchedAt:         profile.FetchedAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	return err
}

func (s *SQLStore) UpsertContent(ctx context.Context, item CompetitorContent) error {
	now := time.Now()
	rawMetrics := pqtype.NullRawMessage{}
	if len(item.RawMetrics) > 0 {
		rawMetrics = pqtype.NullRawMessage{RawMessage: item.RawMetrics, Valid: true}
	}
	_, err := s.q.UpsertCompetitorContentItem(ctx, database.UpsertCompetitorContentItemParams{
		ID:               uuid.New(),
		Platform:         string(item.Platform),
		ProfileKey:       item.ProfileKey,
		ContentID:        item.ContentID,
		ContentType:      item.ContentType,
		Url:              item.URL,
		ContentCreatedAt: item.ContentCreatedAt,
		Likes:            item.Likes,
		Comments:         item.Comments,
		Views:            nullInt64(item.Views),
		Shares:           nullInt64(item.Shares),
		DurationSeconds:  nullInt64(item.DurationSeconds),
		RawMetrics:       rawMetrics,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	return err
}

func (s *SQLStore) ListProfiles(ctx context.Context, refs []CompetitorRef) ([]CompetitorProfile, error) {
	byPlatform := make(map[Platform][]string)
	for _, ref := range refs {
		byPlatform[ref.Platform] = append(byPlatform[ref.Platform], ref.ExternalAccountID)
	}

	var profiles []CompetitorProfile
	for platform, accounts := range byPlatform {
		rows, err := s.q.ListCompetitorProfilesByAccounts(ctx, database.ListCompetitorProfilesByAccountsParams{
			Platform: string(platform),
			Column2:  accounts,
		})
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			profiles = append(profiles, CompetitorProfile{
				Platform:          Platform(row.Platform),
				ExternalAccountID: row.ExternalAccountID,
				DisplayName:       row.DisplayName,
				ProfileURL:        row.ProfileUrl,
				FollowerCount:     row.FollowerCount,
				Category:          row.Category.String,
				FetchedAt:         row.FetchedAt,
				CreatedAt:         row.CreatedAt,
				UpdatedAt:         row.UpdatedAt,
			})
		}
	}
	return profiles, nil
}

func (s *SQLStore) ListContent(ctx context.Context, platform Platform, profileKeys []string) ([]CompetitorContent, error) {
	if len(profileKeys) == 0 {
		return nil, nil
	}
	rows, err := s.q.ListCompetitorContentByProfiles(ctx, database.ListCompetitorContentByProfilesParams{
		Platform: string(platform),
		Column2:  profileKeys,
	})
	if err != nil {
		return nil, err
	}

	content := make([]CompetitorContent, 0, len(rows))
	for _, row := range rows {
		var raw json.RawMessage
		if row.RawMetrics.Valid {
			raw = row.RawMetrics.RawMessage
		}
		content = append(content, CompetitorContent{
			Platform:         Platform(row.Platform),
			ProfileKey:       row.ProfileKey,
			ContentID:        row.ContentID,
			ContentType:      row.ContentType,
			URL:              row.Url,
			ContentCreatedAt: row.ContentCreatedAt,
			Likes:            row.Likes,
			Comments:         row.Comments,
			Views:            row.Views.Int64,
			Shares:           row.Shares.Int64,
			DurationSeconds:  row.DurationSeconds.Int64,
			RawMetrics:       raw,
			CreatedAt:        row.CreatedAt,
			UpdatedAt:        row.UpdatedAt,
		})
	}
	return content, nil
}

func (s *SQLStore) CountPlatformData(ctx context.Context, platform Platform) (int64, int64, error) {
	profiles, err := s.q.CountCompetitorProfilesByPlatform(ctx, string(platform))
	if err != nil {
		return 0, 0, err
	}
	content, err := s.q.CountCompetitorContentByPlatform(ctx, string(platform))
	if err != nil {
		return 0, 0, err
	}
	return profiles, content, nil
}

func nullInt64(v int64) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}
