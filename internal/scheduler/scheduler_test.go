package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTask struct {
	name     string
	interval time.Duration
	runs     atomic.Int32
	err      error
}

func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	return t.err
}

func (t *countingTask) Interval() time.Duration { return t.interval }
func (t *countingTask) Name() string            { return t.name }

func TestScheduler_RunsImmediately(t *testing.T) {
	task := &countingTask{name: "slow", interval: time.Hour}
	s := New()
	s.AddTask(task)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return task.runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Equal(t, int32(1), task.runs.Load())
}

func TestScheduler_RepeatsOnInterval(t *testing.T) {
	task := &countingTask{name: "fast", interval: 10 * time.Millisecond}
	s := New()
	s.AddTask(task)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	assert.Eventually(t, func() bool { return task.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_ErrorsDoNotStopTask(t *testing.T) {
	task := &countingTask{name: "failing", interval: 10 * time.Millisecond, err: errors.New("backend down")}
	s := New()
	s.AddTask(task)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	assert.Eventually(t, func() bool { return task.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_NoTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, New().Run(ctx))
}
