package benchmark

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRun(t *testing.T, store *fakeStore, creatorID, niche string) *Run {
	t.Helper()
	run, err := store.StartRun(context.Background(), creatorID, niche)
	require.NoError(t, err)
	return run
}

func TestRunPlatformHappyPath(t *testing.T) {
	store := newFakeStore()
	discovery := newFakeDiscovery()
	discovery.candidates[PlatformInstagram] = []CandidateAccount{
		{ExternalAccountID: "acct-1", DisplayName: "One", FollowerCount: 1000},
		{ExternalAccountID: "acct-2", DisplayName: "Two", FollowerCount: 3000},
	}
	discovery.items["acct-1"] = []ContentItem{
		{ContentID: "c-1", ContentType: "reel", Likes: 50, ContentCreatedAt: time.Now()},
	}
	summarizer := &fakeSummarizer{fn: func(req SummaryRequest) (*Insight, error) {
		return &Insight{Positioning: "mid-tier", GeneratedAt: time.Now()}, nil
	}}

	engine := newTestEngine(store, discovery, summarizer)
	run := seedRun(t, store, "creator-1", "fitness")

	engine.runPlatform(context.Background(), "creator-1", "fitness", PlatformInstagram, run.Epoch)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	st := stored.Platforms[PlatformInstagram]
	assert.Equal(t, PlatformCompleted, st.Status)
	assert.Len(t, st.Refs, 2)
	require.NotNil(t, st.Insight)
	assert.Equal(t, "mid-tier", st.Insight.Positioning)

	// Stages only move forward: running first, then a single terminal write.
	assert.Equal(t, []string{"instagram=running", "instagram=completed"}, store.statusWrites)

	profiles, content, err := store.CountPlatformData(context.Background(), PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profiles)
	assert.Equal(t, int64(1), content)
}

func TestRunPlatformZeroCandidatesCompletes(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store, newFakeDiscovery(), &fakeSummarizer{})
	run := seedRun(t, store, "creator-1", "obscure niche")

	engine.runPlatform(context.Background(), "creator-1", "obscure niche", PlatformTikTok, run.Epoch)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	st := stored.Platforms[PlatformTikTok]
	assert.Equal(t, PlatformCompleted, st.Status)
	assert.Empty(t, st.Refs)
	assert.Nil(t, st.Insight)
}

func TestRunPlatformDiscoveryFailureCompletesEmpty(t *testing.T) {
	store := newFakeStore()
	discovery := newFakeDiscovery()
	discovery.discoverErr[PlatformYouTube] = errors.New("quota exceeded")

	engine := newTestEngine(store, discovery, &fakeSummarizer{})
	run := seedRun(t, store, "creator-1", "fitness")

	engine.runPlatform(context.Background(), "creator-1", "fitness", PlatformYouTube, run.Epoch)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, PlatformCompleted, stored.Platforms[PlatformYouTube].Status)
}

func TestRunPlatformSummarizerFailureStillCompletes(t *testing.T) {
	store := newFakeStore()
	discovery := newFakeDiscovery()
	discovery.candidates[PlatformInstagram] = []CandidateAccount{
		{ExternalAccountID: "acct-1", FollowerCount: 500},
	}
	summarizer := &fakeSummarizer{fn: func(req SummaryRequest) (*Insight, error) {
		return nil, errors.New("service unavailable")
	}}

	engine := newTestEngine(store, discovery, summarizer)
	run := seedRun(t, store, "creator-1", "fitness")

	engine.runPlatform(context.Background(), "creator-1", "fitness", PlatformInstagram, run.Epoch)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	st := stored.Platforms[PlatformInstagram]
	assert.Equal(t, PlatformCompleted, st.Status)
	assert.Nil(t, st.Insight)
	assert.Len(t, st.Refs, 1)
}

func TestRunPlatformBadAccountSkipped(t *testing.T) {
	store := newFakeStore()
	discovery := newFakeDiscovery()
	discovery.candidates[PlatformTikTok] = []CandidateAccount{
		{ExternalAccountID: "good", FollowerCount: 100},
		{ExternalAccountID: "bad", FollowerCount: 200},
	}
	discovery.items["good"] = []ContentItem{{ContentID: "v-1", ContentType: "video"}}
	discovery.fetchErr["bad"] = errors.New("account is private")

	engine := newTestEngine(store, discovery, &fakeSummarizer{})
	run := seedRun(t, store, "creator-1", "fitness")

	engine.runPlatform(context.Background(), "creator-1", "fitness", PlatformTikTok, run.Epoch)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	st := stored.Platforms[PlatformTikTok]
	assert.Equal(t, PlatformCompleted, st.Status)
	assert.Len(t, st.Refs, 2)

	_, content, err := store.CountPlatformData(context.Background(), PlatformTikTok)
	require.NoError(t, err)
	assert.Equal(t, int64(1), content)
}

func TestRunPlatformRerunKeepsFirstSeenTimestamps(t *testing.T) {
	store := newFakeStore()
	discovery := newFakeDiscovery()
	firstSeen := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	discovery.candidates[PlatformInstagram] = []CandidateAccount{
		{ExternalAccountID: "acct-1", FollowerCount: 100},
	}
	discovery.items["acct-1"] = []ContentItem{
		{ContentID: "c-1", ContentType: "reel", Likes: 10, ContentCreatedAt: firstSeen},
	}

	engine := newTestEngine(store, discovery, &fakeSummarizer{})
	run := seedRun(t, store, "creator-1", "fitness")
	engine.runPlatform(context.Background(), "creator-1", "fitness", PlatformInstagram, run.Epoch)

	originalProfile := store.profiles[profileKey(PlatformInstagram, "acct-1")]
	originalContent := store.content[contentKey(PlatformInstagram, "acct-1", "c-1")]

	// A later run rediscovers the same account with fresher counters and a
	// drifted timestamp from the upstream feed.
	discovery.items["acct-1"] = []ContentItem{
		{ContentID: "c-1", ContentType: "reel", Likes: 999, ContentCreatedAt: firstSeen.Add(time.Hour)},
	}
	rerun, err := store.StartRun(context.Background(), "creator-1", "fitness")
	require.NoError(t, err)
	engine.runPlatform(context.Background(), "creator-1", "fitness", PlatformInstagram, rerun.Epoch)

	// Rediscovery never duplicates rows.
	assert.Len(t, store.profiles, 1)
	assert.Len(t, store.content, 1)

	profile := store.profiles[profileKey(PlatformInstagram, "acct-1")]
	assert.True(t, profile.CreatedAt.Equal(originalProfile.CreatedAt))

	content := store.content[contentKey(PlatformInstagram, "acct-1", "c-1")]
	assert.Equal(t, int64(999), content.Likes)
	assert.True(t, content.CreatedAt.Equal(originalContent.CreatedAt))
	assert.True(t, content.ContentCreatedAt.Equal(firstSeen))
}

func TestRunPlatformStaleEpochDropsWrites(t *testing.T) {
	store := newFakeStore()
	discovery := newFakeDiscovery()
	discovery.candidates[PlatformInstagram] = []CandidateAccount{
		{ExternalAccountID: "acct-1"},
	}

	engine := newTestEngine(store, discovery, &fakeSummarizer{})
	first := seedRun(t, store, "creator-1", "fitness")

	// A force restart bumps the epoch before the old pipeline gets going.
	_, err := store.StartRun(context.Background(), "creator-1", "fitness")
	require.NoError(t, err)

	engine.runPlatform(context.Background(), "creator-1", "fitness", PlatformInstagram, first.Epoch)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	st := stored.Platforms[PlatformInstagram]
	assert.Equal(t, PlatformPending, st.Status)
	assert.Empty(t, st.Refs)
	assert.Empty(t, store.statusWrites)
}

func TestFinishPlatformTerminalWriteAndSignal(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store, newFakeDiscovery(), &fakeSummarizer{})
	run := seedRun(t, store, "creator-1", "fitness")

	// Two siblings already terminal; the last signal must finalize the run.
	require.NoError(t, store.UpdatePlatformStatus(context.Background(), "creator-1", PlatformInstagram, run.Epoch, PlatformCompleted))
	require.NoError(t, store.UpdatePlatformStatus(context.Background(), "creator-1", PlatformTikTok, run.Epoch, PlatformCompleted))

	engine.finishPlatform(context.Background(), "creator-1", PlatformYouTube, run.Epoch, nil, false)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, PlatformCompleted, stored.Platforms[PlatformYouTube].Status)
	assert.Equal(t, OverallCompleted, stored.Overall)
}

func TestFinishPlatformFailedMarksFailed(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store, newFakeDiscovery(), &fakeSummarizer{})
	run := seedRun(t, store, "creator-1", "fitness")

	engine.finishPlatform(context.Background(), "creator-1", PlatformInstagram, run.Epoch, nil, true)

	stored, err := store.GetRun(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, PlatformFailed, stored.Platforms[PlatformInstagram].Status)
	// Siblings still pending, so the run stays open.
	assert.Equal(t, OverallRunning, stored.Overall)
}
