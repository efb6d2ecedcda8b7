package benchmark

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeStore is an in-memory Store with the same epoch-guard semantics as the
// SQL one: writes carrying a superseded epoch match nothing and come back as
// ErrStaleEpoch.
type fakeStore struct {
	mu       sync.Mutex
	runs     map[string]*Run
	profiles map[string]CompetitorProfile
	content  map[string]CompetitorContent

	statusWrites  []string
	overallWrites []OverallStatus

	failStatusUpdate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		runs:     make(map[string]*Run),
		profiles: make(map[string]CompetitorProfile),
		content:  make(map[string]CompetitorContent),
	}
}

func copyRun(run *Run) *Run {
	out := *run
	out.Platforms = make(map[Platform]*PlatformState, len(run.Platforms))
	for p, st := range run.Platforms {
		stCopy := *st
		stCopy.Refs = append([]CompetitorRef(nil), st.Refs...)
		out.Platforms[p] = &stCopy
	}
	return &out
}

func (s *fakeStore) GetRun(ctx context.Context, creatorID string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[creatorID]
	if !ok {
		return nil, ErrRunNotFound
	}
	return copyRun(run), nil
}

func (s *fakeStore) StartRun(ctx context.Context, creatorID, niche string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var epoch int64 = 1
	now := time.Now()
	createdAt := now
	if existing, ok := s.runs[creatorID]; ok {
		epoch = existing.Epoch + 1
		createdAt = existing.CreatedAt
	}

	run := &Run{
		CreatorID: creatorID,
		Niche:     niche,
		Overall:   OverallRunning,
		Epoch:     epoch,
		Platforms: make(map[Platform]*PlatformState),
		StartedAt: now,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	for _, p := range AllPlatforms {
		run.Platforms[p] = &PlatformState{Platform: p, Status: PlatformPending, UpdatedAt: now}
	}
	s.runs[creatorID] = run
	return copyRun(run), nil
}

func (s *fakeStore) platformSlot(creatorID string, platform Platform, epoch int64) (*PlatformState, error) {
	run, ok := s.runs[creatorID]
	if !ok {
		return nil, ErrRunNotFound
	}
	if run.Epoch != epoch {
		return nil, ErrStaleEpoch
	}
	return run.Platforms[platform], nil
}

func (s *fakeStore) UpdatePlatformStatus(ctx context.Context, creatorID string, platform Platform, epoch int64, status PlatformStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failStatusUpdate != nil {
		return s.failStatusUpdate
	}
	st, err := s.platformSlot(creatorID, platform, epoch)
	if err != nil {
		return err
	}
	st.Status = status
	st.UpdatedAt = time.Now()
	s.statusWrites = append(s.statusWrites, fmt.Sprintf("%s=%s", platform, status))
	return nil
}

func (s *fakeStore) SetPlatformRefs(ctx context.Context, creatorID string, platform Platform, epoch int64, refs []CompetitorRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.platformSlot(creatorID, platform, epoch)
	if err != nil {
		return err
	}
	st.Refs = append([]CompetitorRef(nil), refs...)
	st.UpdatedAt = time.Now()
	return nil
}

func (s *fakeStore) SetPlatformInsight(ctx context.Context, creatorID string, platform Platform, epoch int64, insight *Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.platformSlot(creatorID, platform, epoch)
	if err != nil {
		return err
	}
	st.Insight = insight
	st.UpdatedAt = time.Now()
	return nil
}

func (s *fakeStore) UpdateOverallStatus(ctx context.Context, creatorID string, status OverallStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[creatorID]
	if !ok {
		return ErrRunNotFound
	}
	run.Overall = status
	run.UpdatedAt = time.Now()
	s.overallWrites = append(s.overallWrites, status)
	return nil
}

func (s *fakeStore) ListRunningCreators(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for id, run := range s.runs {
		if run.Overall == OverallRunning {
			out = append(out, id)
		}
	}
	return out, nil
}

func profileKey(platform Platform, accountID string) string {
	return string(platform) + ":" + accountID
}

func contentKey(platform Platform, profileKey, contentID string) string {
	return string(platform) + ":" + profileKey + ":" + contentID
}

// UpsertProfile mirrors the SQL upsert: a rediscovered profile refreshes its
// mutable columns but keeps the created_at of the first write.
func (s *fakeStore) UpsertProfile(ctx context.Context, profile CompetitorProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	key := profileKey(profile.Platform, profile.ExternalAccountID)
	if existing, ok := s.profiles[key]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
	s.profiles[key] = profile
	return nil
}

// UpsertContent mirrors the SQL upsert: re-seen content refreshes engagement
// counters only; created_at and content_created_at keep their first values.
func (s *fakeStore) UpsertContent(ctx context.Context, item CompetitorContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	key := contentKey(item.Platform, item.ProfileKey, item.ContentID)
	if existing, ok := s.content[key]; ok {
		item.CreatedAt = existing.CreatedAt
		item.ContentCreatedAt = existing.ContentCreatedAt
	} else if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}
	s.content[key] = item
	return nil
}

func (s *fakeStore) ListProfiles(ctx context.Context, refs []CompetitorRef) ([]CompetitorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []CompetitorProfile
	for _, ref := range refs {
		if p, ok := s.profiles[profileKey(ref.Platform, ref.ExternalAccountID)]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) ListContent(ctx context.Context, platform Platform, profileKeys []string) ([]CompetitorContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make(map[string]bool, len(profileKeys))
	for _, k := range profileKeys {
		keys[k] = true
	}
	var out []CompetitorContent
	for _, c := range s.content {
		if c.Platform == platform && keys[c.ProfileKey] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) CountPlatformData(ctx context.Context, platform Platform) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var profiles, content int64
	for _, p := range s.profiles {
		if p.Platform == platform {
			profiles++
		}
	}
	for _, c := range s.content {
		if c.Platform == platform {
			content++
		}
	}
	return profiles, content, nil
}

type fakeDiscovery struct {
	candidates  map[Platform][]CandidateAccount
	items       map[string][]ContentItem
	discoverErr map[Platform]error
	fetchErr    map[string]error
}

func newFakeDiscovery() *fakeDiscovery {
	return &fakeDiscovery{
		candidates:  make(map[Platform][]CandidateAccount),
		items:       make(map[string][]ContentItem),
		discoverErr: make(map[Platform]error),
		fetchErr:    make(map[string]error),
	}
}

func (d *fakeDiscovery) Discover(ctx context.Context, platform Platform, niche string) ([]CandidateAccount, error) {
	if err := d.discoverErr[platform]; err != nil {
		return nil, err
	}
	return d.candidates[platform], nil
}

func (d *fakeDiscovery) FetchContent(ctx context.Context, platform Platform, accountID string) ([]ContentItem, error) {
	if err := d.fetchErr[accountID]; err != nil {
		return nil, err
	}
	return d.items[accountID], nil
}

type fakeSummarizer struct {
	fn func(req SummaryRequest) (*Insight, error)
}

func (s *fakeSummarizer) Summarize(ctx context.Context, req SummaryRequest) (*Insight, error) {
	if s.fn == nil {
		return nil, nil
	}
	return s.fn(req)
}

func newTestEngine(store Store, discovery DiscoveryService, summarizer Summarizer) *Engine {
	return NewEngine(store, discovery, summarizer, 90*time.Second)
}
