package benchmark

import (
	"context"
	"errors"
	"time"
)

var (
	ErrValidation    = errors.New("creator id is required")
	ErrRunInProgress = errors.New("a benchmarking run is already in progress")
	ErrRunNotFound   = errors.New("no benchmarking run found")
	// ErrStaleEpoch is returned by the store when a write carries the epoch
	// of a superseded run. The write matched zero rows and was dropped.
	ErrStaleEpoch = errors.New("stale run epoch, write dropped")
)

type Store interface {
	GetRun(ctx context.Context, creatorID string) (*Run, error)
	StartRun(ctx context.Context, creatorID, niche string) (*Run, error)
	UpdatePlatformStatus(ctx context.Context, creatorID string, platform Platform, epoch int64, status PlatformStatus) error
	SetPlatformRefs(ctx context.Context, creatorID string, platform Platform, epoch int64, refs []CompetitorRef) error
	SetPlatformInsight(ctx context.Context, creatorID string, platform Platform, epoch int64, insight *Insight) error
	UpdateOverallStatus(ctx context.Context, creatorID string, status OverallStatus) error
	ListRunningCreators(ctx context.Context) ([]string, error)

	UpsertProfile(ctx context.Context, profile CompetitorProfile) error
	UpsertContent(ctx context.Context, item CompetitorContent) error
	ListProfiles(ctx context.Context, refs []CompetitorRef) ([]CompetitorProfile, error)
	ListContent(ctx context.Context, platform Platform, profileKeys []string) ([]CompetitorContent, error)
	CountPlatformData(ctx context.Context, platform Platform) (profiles int64, content int64, err error)
}

type DiscoveryService interface {
	Discover(ctx context.Context, platform Platform, niche string) ([]CandidateAccount, error)
	FetchContent(ctx context.Context, platform Platform, accountID string) ([]ContentItem, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (*Insight, error)
}

// Engine runs benchmarking workflows: it fans platform pipelines out, keeps
// run state current and reconciles status on every read.
type Engine struct {
	store      Store
	discovery  DiscoveryService
	summarizer Summarizer
	runTimeout time.Duration
	now        func() time.Time

	// notify is called once all platforms of a run are terminal.
	notify func(creatorID string, insights map[Platform]*Insight)
}

const defaultRunTimeout = 90 * time.Second

func NewEngine(store Store, discovery DiscoveryService, summarizer Summarizer, runTimeout time.Duration) *Engine {
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}
	return &Engine{
		store:      store,
		discovery:  discovery,
		summarizer: summarizer,
		runTimeout: runTimeout,
		now:        time.Now,
	}
}

func (e *Engine) SetNotifyHook(hook func(creatorID string, insights map[Platform]*Insight)) {
	e.notify = hook
}

// ListRunningCreators exposes the set of creators with in-flight runs, so
// the background sweeper knows what to reconcile.
func (e *Engine) ListRunningCreators(ctx context.Context) ([]string, error) {
	return e.store.ListRunningCreators(ctx)
}
