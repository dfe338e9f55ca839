// Package scheduler is a bounded worker pool. Anything that blocks on
// external process I/O runs here instead of on the protocol loop.
package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrStopped is yielded by Go for work submitted after Stop.
var ErrStopped = errors.New("scheduler stopped")

type Task struct {
	Name    string
	Execute func(ctx context.Context) error
}

type Scheduler struct {
	taskQueue chan Task
	cancel    context.CancelFunc
	ctx       context.Context
	wg        sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewScheduler creates a pool with the given number of workers and a
// queue of the same size.
func NewScheduler(workers int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		taskQueue: make(chan Task, workers),
		ctx:       ctx,
		cancel:    cancel,
	}
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *Scheduler) worker() {
	for task := range s.taskQueue {
		if err := task.Execute(s.ctx); err != nil {
			log.Printf("Task %s failed: %v", task.Name, err)
		}
		s.wg.Done()
	}
}

// Schedule queues a task, blocking while the queue is full. After Stop
// it reports false and the task is dropped instead of queued.
func (s *Scheduler) Schedule(task Task) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.taskQueue <- task
	return true
}

// Go runs fn on the pool and returns a channel that yields its error once.
func (s *Scheduler) Go(name string, fn func(ctx context.Context) error) <-chan error {
	done := make(chan error, 1)
	scheduled := s.Schedule(Task{
		Name: name,
		Execute: func(ctx context.Context) error {
			err := fn(ctx)
			done <- err
			return err
		},
	})
	if !scheduled {
		done <- ErrStopped
	}
	return done
}

// Stop cancels running tasks, waits for queued ones to drain and shuts
// the workers down. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	log.Println("Stopping scheduler.")
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
	log.Println("Scheduler stopped.")
}
