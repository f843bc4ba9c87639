package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_RunsTasksInOrderEachTick(t *testing.T) {
	t.Parallel()

	var first, second atomic.Int32
	sched := New(5*time.Millisecond, nil,
		Task{Name: "first", Run: func(context.Context) error {
			first.Add(1)
			return nil
		}},
		Task{Name: "second", Run: func(context.Context) error {
			if second.Load() >= first.Load() {
				t.Error("second task ran before first")
			}
			second.Add(1)
			return nil
		}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for first.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("scheduler never reached 3 ticks (got %d)", first.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done

	if second.Load() == 0 {
		t.Fatalf("second task never ran")
	}
}

func TestScheduler_TaskErrorDoesNotStopLoop(t *testing.T) {
	t.Parallel()

	var after atomic.Int32
	sched := New(5*time.Millisecond, nil,
		Task{Name: "failing", Run: func(context.Context) error {
			return errors.New("boom")
		}},
		Task{Name: "after", Run: func(context.Context) error {
			after.Add(1)
			return nil
		}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for after.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("task after a failure never ran twice")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}
