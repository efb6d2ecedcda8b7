package benchmark

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// runPlatform drives one platform through the pipeline:
//
//	pending -> running -> discover -> persist profiles -> fetch content
//	        -> persist content -> summarize -> completed|failed
//
// Stages only move forward. Whatever happens in between, the deferred
// finishPlatform writes a terminal status and emits the completion signal,
// so a broken platform can never silently stall the run.
func (e *Engine) runPlatform(ctx context.Context, creatorID, niche string, platform Platform, epoch int64) {
	var (
		insight *Insight
		failed  bool
		stale   bool
	)

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Benchmark: panic in %s pipeline for creator %s: %v", platform, creatorID, r)
			failed = true
		}
		if stale {
			logrus.Infof("Benchmark: %s pipeline for creator %s superseded, dropping its writes", platform, creatorID)
			return
		}
		e.finishPlatform(ctx, creatorID, platform, epoch, insight, failed)
	}()

	// Flip to running before any external call, so a reader never observes
	// pending once work has begun.
	if err := e.store.UpdatePlatformStatus(ctx, creatorID, platform, epoch, PlatformRunning); err != nil {
		if errors.Is(err, ErrStaleEpoch) {
			stale = true
			return
		}
		logrus.Errorf("Benchmark: failed to mark %s running for creator %s: %v", platform, creatorID, err)
		failed = true
		return
	}

	candidates, err := e.discovery.Discover(ctx, platform, niche)
	if err != nil {
		// Collaborator failures surface as an empty candidate set.
		logrus.Warnf("Benchmark: %s discovery failed for creator %s: %v", platform, creatorID, err)
	}

	// Zero results is not a failure: the platform completes with no data.
	if len(candidates) == 0 {
		logrus.Infof("Benchmark: no %s candidates found for creator %s (niche=%q)", platform, creatorID, niche)
		return
	}

	// Profiles are persisted before any content fetch, so a mid-pipeline
	// crash still leaves evidence for the reconciler.
	now := e.now()
	refs := make([]CompetitorRef, 0, len(candidates))
	persisted := make([]CandidateAccount, 0, len(candidates))
	for _, cand := range candidates {
		profile := CompetitorProfile{
			Platform:          platform,
			ExternalAccountID: cand.ExternalAccountID,
			DisplayName:       cand.DisplayName,
			ProfileURL:        cand.ProfileURL,
			FollowerCount:     cand.FollowerCount,
			Category:          cand.Category,
			FetchedAt:         now,
		}
		if err := e.store.UpsertProfile(ctx, profile); err != nil {
			logrus.Errorf("Benchmark: failed to persist %s profile %s: %v", platform, cand.ExternalAccountID, err)
			continue
		}
		refs = append(refs, CompetitorRef{Platform: platform, ExternalAccountID: cand.ExternalAccountID})
		persisted = append(persisted, cand)
	}

	if err := e.store.SetPlatformRefs(ctx, creatorID, platform, epoch, refs); err != nil {
		if errors.Is(err, ErrStaleEpoch) {
			stale = true
			return
		}
		logrus.Errorf("Benchmark: failed to record %s competitor refs for creator %s: %v", platform, creatorID, err)
	}

	// Candidates are fetched independently: one bad account is skipped, not
	// an aborted platform.
	var content []CompetitorContent
	for _, cand := range persisted {
		items, err := e.discovery.FetchContent(ctx, platform, cand.ExternalAccountID)
		if err != nil {
			logrus.Warnf("Benchmark: %s content fetch failed for account %s: %v", platform, cand.ExternalAccountID, err)
			continue
		}
		for _, item := range items {
			cc := CompetitorContent{
				Platform:         platform,
				ProfileKey:       cand.ExternalAccountID,
				ContentID:        item.ContentID,
				ContentType:      item.ContentType,
				URL:              item.URL,
				ContentCreatedAt: item.ContentCreatedAt,
				Likes:            item.Likes,
				Comments:         item.Comments,
				Views:            item.Views,
				Shares:           item.Shares,
				DurationSeconds:  item.DurationSeconds,
				RawMetrics:       item.RawMetrics,
			}
			if err := e.store.UpsertContent(ctx, cc); err != nil {
				logrus.Errorf("Benchmark: failed to persist %s content %s/%s: %v", platform, cand.ExternalAccountID, item.ContentID, err)
				continue
			}
			content = append(content, cc)
		}
	}

	// Summarization failure is never a pipeline failure; the platform just
	// completes without an insight.
	req := buildSummaryRequest(platform, persisted, content)
	ins, err := e.summarizer.Summarize(ctx, req)
	if err != nil {
		logrus.Warnf("Benchmark: %s summarization failed for creator %s: %v", platform, creatorID, err)
		return
	}
	insight = ins
}

// finishPlatform is the terminal step shared by every pipeline branch: write
// the final platform status (and insight, when there is one), then emit the
// completion signal. Both are attempted regardless of how the pipeline ended.
func (e *Engine) finishPlatform(ctx context.Context, creatorID string, platform Platform, epoch int64, insight *Insight, failed bool) {
	if insight != nil && !failed {
		if err := e.store.SetPlatformInsight(ctx, creatorID, platform, epoch, insight); err != nil {
			if errors.Is(err, ErrStaleEpoch) {
				return
			}
			logrus.Errorf("Benchmark: failed to persist %s insight for creator %s: %v", platform, creatorID, err)
		}
	}

	status := PlatformCompleted
	if failed {
		status = PlatformFailed
	}

	if err := e.store.UpdatePlatformStatus(ctx, creatorID, platform, epoch, status); err != nil {
		if errors.Is(err, ErrStaleEpoch) {
			return
		}
		logrus.Errorf("Benchmark: failed to write terminal %s status for creator %s: %v", platform, creatorID, err)
		status = PlatformFailed
	}

	e.OnPlatformCompleted(ctx, creatorID, platform, status == PlatformCompleted)
}
