package worker

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

// Worker periodically sweeps running benchmark runs so stuck ones get
// reconciled even when nobody polls their status.
type Worker struct {
	Engine   *benchmark.Engine
	Ticker   *time.Ticker
	StopChan chan bool
	mu       sync.Mutex
	running  bool
	active   bool
}

func NewWorker(engine *benchmark.Engine) *Worker {
	return &Worker{
		Engine:   engine,
		StopChan: make(chan bool),
	}
}

func (w *Worker) Start(interval time.Duration) {
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		logrus.Info("Worker: Scheduler already active, use Restart to change interval")
		return
	}
	w.active = true
	w.mu.Unlock()

	w.Ticker = time.NewTicker(interval)
	go func() {
		defer func() {
			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
		}()
		for {
			select {
			case <-w.Ticker.C:
				w.SweepAll()
			case <-w.StopChan:
				w.Ticker.Stop()
				return
			}
		}
	}()
	logrus.Infof("Background worker started with interval: %v", interval)
}

func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		logrus.Info("Worker: Scheduler not active")
		return
	}
	w.mu.Unlock()

	w.StopChan <- true
	logrus.Info("Background worker stopped")
}

func (w *Worker) Restart(interval time.Duration) {
	w.mu.Lock()
	isActive := w.active
	w.mu.Unlock()

	if isActive {
		w.Stop()
		time.Sleep(100 * time.Millisecond)
	}
	w.Start(interval)
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Worker) SweepAll() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		logrus.Info("Worker: Sweep already in progress, skipping...")
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	RunSweep(w.Engine)
}
