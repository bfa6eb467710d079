package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of periodic work. Run must be safe to call repeatedly and
// must tolerate being skipped for a tick.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// PeriodicDispatcher runs its tasks in order on a fixed interval. A tick that
// fires while the previous tick is still running is skipped entirely rather
// than queued, so slow sweeps never pile up.
type PeriodicDispatcher struct {
	interval time.Duration
	tasks    []Task

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func NewPeriodicDispatcher(interval time.Duration, tasks ...Task) *PeriodicDispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicDispatcher{
		interval: interval,
		tasks:    tasks,
	}
}

func (d *PeriodicDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.done = make(chan struct{})

	go d.loop(runCtx)

	slog.Info("periodic dispatcher started",
		"interval", d.interval.String(),
		"tasks", len(d.tasks))
}

func (d *PeriodicDispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	cancel := d.cancel
	done := d.done
	d.mu.Unlock()

	cancel()
	<-done
	slog.Info("periodic dispatcher stopped")
}

func (d *PeriodicDispatcher) loop(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	var running sync.Mutex
	var wg sync.WaitGroup
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-ticker.C:
			if !running.TryLock() {
				slog.Warn("previous dispatcher tick still running, skipping")
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer running.Unlock()
				d.runTasks(ctx)
			}()
		}
	}
}

// runTasks executes every task even when an earlier one fails. A task error
// is that task's problem alone.
func (d *PeriodicDispatcher) runTasks(ctx context.Context) {
	for _, t := range d.tasks {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		if err := t.Run(ctx); err != nil {
			slog.Error("dispatcher task failed",
				"task", t.Name,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err.Error())
			continue
		}
		slog.Debug("dispatcher task completed",
			"task", t.Name,
			"duration_ms", time.Since(start).Milliseconds())
	}
}
