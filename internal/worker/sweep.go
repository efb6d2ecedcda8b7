package worker

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

// RunSweep reconciles every run still marked running. Reading a run through
// the engine re-derives platform and overall status from persisted data, so
// runs whose completion signal got lost converge without a status poll.
func RunSweep(engine *benchmark.Engine) {
	logrus.Info("Worker: Starting sweep...")
	ctx := context.Background()

	creators, err := engine.ListRunningCreators(ctx)
	if err != nil {
		logrus.Errorf("Worker Error listing running creators: %v", err)
		return
	}
	if len(creators) == 0 {
		logrus.Info("Worker: No running benchmarks to sweep")
		return
	}

	var wg sync.WaitGroup
	for _, creatorID := range creators {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logrus.Errorf("Worker Panic in sweep (creator=%s): %v", id, r)
				}
			}()

			if _, err := engine.GetRun(ctx, id); err != nil {
				logrus.Errorf("Worker Sweep error (creator=%s): %v", id, err)
			}
		}(creatorID)
	}
	wg.Wait()

	logrus.Infof("Worker: Completed sweep for %d runs", len(creators))
}
