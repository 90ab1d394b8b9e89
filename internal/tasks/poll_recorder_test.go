package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetdash/internal/models"
)

// mockHistory is a hand-written database.PollHistoryRepository
type mockHistory struct {
	mu      sync.Mutex
	events  []*models.PollEvent
	batches int
	pruned  []int
	errors  []error
}

func (m *mockHistory) InsertBatch(events []*models.PollEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.errors) > 0 {
		err := m.errors[0]
		m.errors = m.errors[1:]
		return err
	}
	m.events = append(m.events, events...)
	m.batches++
	return nil
}

func (m *mockHistory) Recent(limit int) ([]models.PollEvent, error) {
	return nil, nil
}

func (m *mockHistory) Prune(keep int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned = append(m.pruned, keep)
	return 0, nil
}

func (m *mockHistory) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func TestNewPollRecorder_Defaults(t *testing.T) {
	r := NewPollRecorder(&mockHistory{}, make(chan *models.PollEvent), 0, 0, 0)

	require.NotNil(t, r)
	assert.Equal(t, DefaultHistoryBatchSize, r.batchSize)
	assert.Equal(t, DefaultHistoryFlushInterval, r.flushInterval)
}

func TestPollRecorder_BatchFlush(t *testing.T) {
	repo := &mockHistory{}
	events := make(chan *models.PollEvent, 10)
	r := NewPollRecorder(repo, events, 3, time.Hour, 100)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Start(ctx)

	for i := 0; i < 3; i++ {
		events <- &models.PollEvent{OK: true, AircraftCount: i}
	}

	assert.Eventually(t, func() bool { return repo.count() == 3 }, time.Second, 5*time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.batches)
	assert.Equal(t, []int{100}, repo.pruned)
}

func TestPollRecorder_IntervalFlush(t *testing.T) {
	repo := &mockHistory{}
	events := make(chan *models.PollEvent, 10)
	r := NewPollRecorder(repo, events, 100, 20*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Start(ctx)

	events <- &models.PollEvent{OK: true}

	assert.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 5*time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Empty(t, repo.pruned, "keep=0 never prunes")
}

func TestPollRecorder_FlushOnCancel(t *testing.T) {
	repo := &mockHistory{}
	events := make(chan *models.PollEvent, 10)
	r := NewPollRecorder(repo, events, 100, time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	events <- &models.PollEvent{OK: true}
	events <- &models.PollEvent{OK: false, Error: "timeout"}
	require.Eventually(t, func() bool { return len(events) == 0 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("recorder did not stop")
	}
	assert.Equal(t, 2, repo.count())
}

func TestPollRecorder_DrainsQueueOnCancel(t *testing.T) {
	repo := &mockHistory{}
	events := make(chan *models.PollEvent, 10)
	for i := 0; i < 4; i++ {
		events <- &models.PollEvent{AircraftCount: i}
	}
	r := NewPollRecorder(repo, events, 100, time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Start(ctx), context.Canceled)
	assert.Equal(t, 4, repo.count())
}

func TestPollRecorder_ChannelClosed(t *testing.T) {
	repo := &mockHistory{}
	events := make(chan *models.PollEvent, 10)
	r := NewPollRecorder(repo, events, 100, time.Hour, 0)

	events <- &models.PollEvent{OK: true}
	events <- nil
	close(events)

	assert.NoError(t, r.Start(context.Background()))
	assert.Equal(t, 1, repo.count())
}

func TestPollRecorder_InsertErrorDropsBatch(t *testing.T) {
	repo := &mockHistory{errors: []error{errors.New("disk full")}}
	events := make(chan *models.PollEvent, 10)
	r := NewPollRecorder(repo, events, 1, time.Hour, 0)

	events <- &models.PollEvent{AircraftCount: 1}
	events <- &models.PollEvent{AircraftCount: 2}
	close(events)

	require.NoError(t, r.Start(context.Background()))

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.events, 1)
	assert.Equal(t, 2, repo.events[0].AircraftCount)
}
