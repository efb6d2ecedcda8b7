package benchmark

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
)

// GetRun is the status read. It never trusts stored platform flags blindly:
// the completion signal that should have advanced a platform may have been
// lost, so completion is re-derived from persisted data on every read. The
// reconciled view carries the merged profile and content listings.
func (e *Engine) GetRun(ctx context.Context, creatorID string) (*RunView, error) {
	run, err := e.store.GetRun(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	timedOut := run.Overall == OverallRunning && now.Sub(run.StartedAt) > e.runTimeout

	// A platform stuck at pending/running whose data made it to the store
	// progressed past discovery; without an explicit failed marker that is
	// proof enough to infer completion. Platforms with zero data are left
	// alone and surface as partial once the run times out.
	for _, platform := range AllPlatforms {
		st := run.Platforms[platform]
		if st == nil {
			continue
		}
		if st.Status != PlatformPending && st.Status != PlatformRunning {
			continue
		}

		hasData, err := e.platformHasData(ctx, st)
		if err != nil {
			logrus.Warnf("Benchmark: could not check persisted %s data for creator %s: %v", platform, creatorID, err)
			continue
		}
		if !hasData {
			continue
		}

		if err := e.store.UpdatePlatformStatus(ctx, creatorID, platform, run.Epoch, PlatformCompleted); err != nil {
			if !errors.Is(err, ErrStaleEpoch) {
				logrus.Errorf("Benchmark: failed to persist inferred %s completion for creator %s: %v", platform, creatorID, err)
			}
			continue
		}
		logrus.Infof("Benchmark: inferred %s completion for creator %s from persisted data", platform, creatorID)
		st.Status = PlatformCompleted
		st.UpdatedAt = now
	}

	// A completed platform with profiles and content but no insight gets one
	// synchronously, so "completed" and "has insight" converge without a
	// separate backfill job.
	for _, platform := range AllPlatforms {
		st := run.Platforms[platform]
		if st == nil || st.Status != PlatformCompleted || st.Insight != nil || len(st.Refs) == 0 {
			continue
		}
		e.backfillInsight(ctx, run, st)
	}

	overall := computeOverallStatus(run, timedOut)
	if overall != run.Overall {
		if err := e.store.UpdateOverallStatus(ctx, creatorID, overall); err != nil {
			logrus.Errorf("Benchmark: failed to persist overall status %q for creator %s: %v", overall, creatorID, err)
		} else {
			run.Overall = overall
			run.UpdatedAt = now
		}
	}

	view := &RunView{Run: run}
	e.attachListings(ctx, view)
	return view, nil
}

func (e *Engine) platformHasData(ctx context.Context, st *PlatformState) (bool, error) {
	if len(st.Refs) > 0 || st.Insight != nil {
		return true, nil
	}
	profiles, content, err := e.store.CountPlatformData(ctx, st.Platform)
	if err != nil {
		return false, err
	}
	return profiles > 0 || content > 0, nil
}

func (e *Engine) backfillInsight(ctx context.Context, run *Run, st *PlatformState) {
	profiles, err := e.store.ListProfiles(ctx, st.Refs)
	if err != nil || len(profiles) == 0 {
		return
	}

	content, err := e.store.ListContent(ctx, st.Platform, refKeys(st.Refs))
	if err != nil || len(content) == 0 {
		return
	}

	candidates := make([]CandidateAccount, len(profiles))
	for i, p := range profiles {
		candidates[i] = CandidateAccount{
			ExternalAccountID: p.ExternalAccountID,
			DisplayName:       p.DisplayName,
			ProfileURL:        p.ProfileURL,
			FollowerCount:     p.FollowerCount,
			Category:          p.Category,
		}
	}

	insight, err := e.summarizer.Summarize(ctx, buildSummaryRequest(st.Platform, candidates, content))
	if err != nil || insight == nil {
		logrus.Warnf("Benchmark: lazy %s insight backfill failed for creator %s: %v", st.Platform, run.CreatorID, err)
		return
	}

	if err := e.store.SetPlatformInsight(ctx, run.CreatorID, st.Platform, run.Epoch, insight); err != nil {
		if !errors.Is(err, ErrStaleEpoch) {
			logrus.Errorf("Benchmark: failed to persist backfilled %s insight for creator %s: %v", st.Platform, run.CreatorID, err)
		}
		return
	}
	st.Insight = insight
}

// computeOverallStatus applies the shared completion rules. The reconciler
// and the completion aggregator both go through here so push and pull paths
// cannot drift apart.
func computeOverallStatus(run *Run, timedOut bool) OverallStatus {
	var completed, failed, open int
	for _, platform := range AllPlatforms {
		st := run.Platforms[platform]
		if st == nil {
			open++
			continue
		}
		switch st.Status {
		case PlatformCompleted:
			completed++
		case PlatformFailed:
			failed++
		default:
			open++
		}
	}

	if open > 0 && !timedOut {
		return OverallRunning
	}

	switch {
	case open == 0 && failed == 0:
		return OverallCompleted
	case open == 0 && completed == 0:
		return OverallFailed
	case completed > 0:
		return OverallCompletedPartial
	default:
		return OverallFailed
	}
}

// attachListings loads and merges the run's profile and content listings.
// The competitor store is keyed globally, so overlapping writes from earlier
// runs are collapsed per composite key, keeping the freshest record.
func (e *Engine) attachListings(ctx context.Context, view *RunView) {
	run := view.Run

	var allRefs []CompetitorRef
	for _, platform := range AllPlatforms {
		if st := run.Platforms[platform]; st != nil {
			allRefs = append(allRefs, st.Refs...)
		}
	}
	if len(allRefs) == 0 {
		return
	}

	profiles, err := e.store.ListProfiles(ctx, allRefs)
	if err != nil {
		logrus.Errorf("Benchmark: failed to load competitor profiles for creator %s: %v", run.CreatorID, err)
	} else {
		view.Profiles = mergeProfiles(profiles)
	}

	var allContent []CompetitorContent
	for _, platform := range AllPlatforms {
		st := run.Platforms[platform]
		if st == nil || len(st.Refs) == 0 {
			continue
		}
		content, err := e.store.ListContent(ctx, platform, refKeys(st.Refs))
		if err != nil {
			logrus.Errorf("Benchmark: failed to load %s content for creator %s: %v", platform, run.CreatorID, err)
			continue
		}
		allContent = append(allContent, content...)
	}
	view.Content = mergeContent(allContent)
}

func refKeys(refs []CompetitorRef) []string {
	keys := make([]string, len(refs))
	for i, ref := range refs {
		keys[i] = ref.ExternalAccountID
	}
	return keys
}

// mergeProfiles deduplicates by (platform, account) keeping the most
// recently updated record per key.
func mergeProfiles(profiles []CompetitorProfile) []CompetitorProfile {
	byKey := make(map[string]CompetitorProfile)
	for _, p := range profiles {
		key := string(p.Platform) + ":" + p.ExternalAccountID
		if existing, ok := byKey[key]; ok && !p.UpdatedAt.After(existing.UpdatedAt) {
			continue
		}
		byKey[key] = p
	}

	merged := make([]CompetitorProfile, 0, len(byKey))
	for _, p := range byKey {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Platform != merged[j].Platform {
			return merged[i].Platform < merged[j].Platform
		}
		if merged[i].FollowerCount != merged[j].FollowerCount {
			return merged[i].FollowerCount > merged[j].FollowerCount
		}
		return merged[i].ExternalAccountID < merged[j].ExternalAccountID
	})
	return merged
}

// mergeContent deduplicates by (platform, profile, content id) keeping the
// most recently updated record per key.
func mergeContent(items []CompetitorContent) []CompetitorContent {
	byKey := make(map[string]CompetitorContent)
	for _, c := range items {
		key := string(c.Platform) + ":" + c.ProfileKey + ":" + c.ContentID
		if existing, ok := byKey[key]; ok && !c.UpdatedAt.After(existing.UpdatedAt) {
			continue
		}
		byKey[key] = c
	}

	merged := make([]CompetitorContent, 0, len(byKey))
	for _, c := range byKey {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].ContentCreatedAt.Equal(merged[j].ContentCreatedAt) {
			return merged[i].ContentCreatedAt.After(merged[j].ContentCreatedAt)
		}
		if merged[i].ProfileKey != merged[j].ProfileKey {
			return merged[i].ProfileKey < merged[j].ProfileKey
		}
		return merged[i].ContentID < merged[j].ContentID
	})
	return merged
}
