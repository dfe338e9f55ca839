package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"hxls/internal/scheduler"
)

func TestSchedulerRunsTasks(t *testing.T) {
	s := scheduler.NewScheduler(4)
	defer s.Stop()

	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		s.Schedule(scheduler.Task{
			Name: "count",
			Execute: func(ctx context.Context) error {
				defer wg.Done()
				count.Add(1)
				return nil
			},
		})
	}
	wg.Wait()

	if got := count.Load(); got != 20 {
		t.Fatalf("expected 20 executions, got %d", got)
	}
}

func TestGoReturnsError(t *testing.T) {
	s := scheduler.NewScheduler(1)
	defer s.Stop()

	sentinel := errors.New("task failed")
	err := <-s.Go("failing", func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if err := <-s.Go("passing", func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	s := scheduler.NewScheduler(1)
	s.Stop()

	if s.Schedule(scheduler.Task{
		Name:    "late",
		Execute: func(ctx context.Context) error { return nil },
	}) {
		t.Fatal("expected Schedule to reject tasks after Stop")
	}

	err := <-s.Go("late", func(ctx context.Context) error { return nil })
	if !errors.Is(err, scheduler.ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}

	// A second Stop is a no-op.
	s.Stop()
}

func TestStopCancelsContext(t *testing.T) {
	s := scheduler.NewScheduler(1)

	started := make(chan struct{})
	done := s.Go("blocked", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	<-started
	s.Stop()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
