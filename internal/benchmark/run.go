package benchmark

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// StartRun validates the trigger, enforces single-run-per-creator and fans
// out one pipeline goroutine per platform. It returns as soon as the fresh
// run record is written; callers poll GET for progress.
//
// A force restart does not cancel the previous run's goroutines. They keep
// running against a bumped epoch and every write they attempt matches zero
// rows, so they can no longer touch the new run's slots.
func (e *Engine) StartRun(ctx context.Context, creatorID, niche string, force bool) (*Run, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return nil, ErrValidation
	}

	existing, err := e.store.GetRun(ctx, creatorID)
	if err != nil && !errors.Is(err, ErrRunNotFound) {
		return nil, err
	}

	if existing != nil && existing.Overall == OverallRunning && !force {
		return nil, ErrRunInProgress
	}

	run, err := e.store.StartRun(ctx, creatorID, niche)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Benchmark: starting run for creator %s (niche=%q epoch=%d)", creatorID, niche, run.Epoch)

	for _, platform := range AllPlatforms {
		go func(p Platform) {
			defer func() {
				if r := recover(); r != nil {
					logrus.Errorf("Benchmark: panic escaped %s pipeline for creator %s: %v", p, creatorID, r)
				}
			}()
			// Detached from the request context on purpose: the trigger
			// returns 202 and the pipelines outlive it.
			e.runPlatform(context.Background(), run.CreatorID, run.Niche, p, run.Epoch)
		}(platform)
	}

	return run, nil
}
