// Package scheduler drives the periodic market tick: rate update first, then
// the expiry sweep. Tasks run sequentially on one goroutine, so a slow tick
// can never overlap the next one.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Task is one unit of periodic work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type Scheduler struct {
	interval time.Duration
	tasks    []Task
	log      *zap.Logger
}

const defaultInterval = 10 * time.Second

func New(interval time.Duration, log *zap.Logger, tasks ...Task) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{interval: interval, tasks: tasks, log: log}
}

// Run blocks until ctx is cancelled, executing every task in order on each
// tick. A task error is logged and does not stop the loop or the remaining
// tasks.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", zap.Duration("interval", s.interval), zap.Int("tasks", len(s.tasks)))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			return
		}
		if err := task.Run(ctx); err != nil {
			s.log.Warn("scheduled task failed", zap.String("task", task.Name), zap.Error(err))
		}
	}
}
