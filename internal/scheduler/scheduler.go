package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of periodic work
type Task interface {
	Run(ctx context.Context) error
	Interval() time.Duration
	Name() string
}

// Scheduler runs each task immediately and then on its own fixed interval.
// A slow run delays that task's next tick; it never overlaps with itself.
type Scheduler struct {
	mu    sync.Mutex
	tasks []Task
}

func New() *Scheduler {
	return &Scheduler{tasks: make([]Task, 0)}
}

// AddTask registers a task. Tasks added after Run has started are ignored.
func (s *Scheduler) AddTask(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// Run blocks until ctx is cancelled and every task loop has returned
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	tasks := append([]Task(nil), s.tasks...)
	s.mu.Unlock()

	slog.Info("Starting task scheduler", "task_count", len(tasks))

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			runTask(ctx, task)
		}(task)
	}

	<-ctx.Done()
	wg.Wait()
	slog.Info("Task scheduler stopped")
	return nil
}

func runTask(ctx context.Context, task Task) {
	ticker := time.NewTicker(task.Interval())
	defer ticker.Stop()

	runOnce(ctx, task)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, task)
		}
	}
}

// runOnce logs failures and carries on: a failed run waits for the next tick
func runOnce(ctx context.Context, task Task) {
	if err := task.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("Error running task", "task", task.Name(), "error", err)
	}
}
