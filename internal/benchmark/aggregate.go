package benchmark

import (
	"context"

	"github.com/sirupsen/logrus"
)

// OnPlatformCompleted is the push-driven counterpart to the read-time
// reconciler. It is invoked with every platform completion signal, may fire
// zero or many times per (creator, platform) pair, and only ever recomputes
// the overall status from the stored platform map, so repeats are harmless.
func (e *Engine) OnPlatformCompleted(ctx context.Context, creatorID string, platform Platform, success bool) {
	logrus.Infof("Benchmark: platform %s signalled completion for creator %s (success=%v)", platform, creatorID, success)

	run, err := e.store.GetRun(ctx, creatorID)
	if err != nil {
		logrus.Errorf("Benchmark: completion signal for unknown run %s: %v", creatorID, err)
		return
	}

	for _, p := range AllPlatforms {
		st := run.Platforms[p]
		if st == nil || st.Status == PlatformPending || st.Status == PlatformRunning {
			// Still waiting on a sibling platform.
			return
		}
	}

	overall := computeOverallStatus(run, false)
	if overall == run.Overall {
		return
	}

	if err := e.store.UpdateOverallStatus(ctx, creatorID, overall); err != nil {
		logrus.Errorf("Benchmark: failed to finalize run for creator %s: %v", creatorID, err)
		return
	}

	logrus.Infof("Benchmark: run for creator %s finished with status %s", creatorID, overall)

	if e.notify != nil {
		insights := make(map[Platform]*Insight)
		for _, p := range AllPlatforms {
			if st := run.Platforms[p]; st != nil && st.Insight != nil {
				insights[p] = st.Insight
			}
		}
		e.notify(creatorID, insights)
	}
}
