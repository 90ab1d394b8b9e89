package tasks

import (
	"context"
	"log/slog"
	"time"

	"jetdash/internal/database"
	"jetdash/internal/models"
)

const (
	DefaultHistoryBatchSize     = 10
	DefaultHistoryFlushInterval = time.Minute
)

// PollRecorder batches poll events into the poll_history table and trims the
// table to the newest keep rows after each write
type PollRecorder struct {
	repo          database.PollHistoryRepository
	events        <-chan *models.PollEvent
	batchSize     int
	flushInterval time.Duration
	keep          int // 0 keeps everything
}

func NewPollRecorder(repo database.PollHistoryRepository, events <-chan *models.PollEvent, batchSize int, flushInterval time.Duration, keep int) *PollRecorder {
	if batchSize <= 0 {
		batchSize = DefaultHistoryBatchSize
	}
	if flushInterval <= 0 {
		flushInterval = DefaultHistoryFlushInterval
	}
	return &PollRecorder{
		repo:          repo,
		events:        events,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		keep:          keep,
	}
}

// Start blocks until ctx is cancelled or the channel is closed. Whatever is
// pending is flushed before it returns.
func (r *PollRecorder) Start(ctx context.Context) error {
	batch := make([]*models.PollEvent, 0, r.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.repo.InsertBatch(batch); err != nil {
			slog.Error("Error inserting poll history", "batch_size", len(batch), "error", err)
		} else {
			slog.Debug("Inserted poll history", "batch_size", len(batch))
			r.prune()
		}
		batch = batch[:0]
	}

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			batch = r.drain(batch)
			flush()
			return ctx.Err()

		case <-ticker.C:
			flush()

		case ev, ok := <-r.events:
			if !ok {
				flush()
				return nil
			}
			if ev == nil {
				continue
			}
			batch = append(batch, ev)
			if len(batch) >= r.batchSize {
				flush()
			}
		}
	}
}

// drain collects events already queued when shutdown begins
func (r *PollRecorder) drain(batch []*models.PollEvent) []*models.PollEvent {
	for {
		select {
		case ev, ok := <-r.events:
			if !ok {
				return batch
			}
			if ev != nil {
				batch = append(batch, ev)
			}
		default:
			return batch
		}
	}
}

func (r *PollRecorder) prune() {
	if r.keep <= 0 {
		return
	}
	removed, err := r.repo.Prune(r.keep)
	if err != nil {
		slog.Error("Error pruning poll history", "error", err)
		return
	}
	if removed > 0 {
		slog.Debug("Pruned poll history", "removed", removed, "keep", r.keep)
	}
}
