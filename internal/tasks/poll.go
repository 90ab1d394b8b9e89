package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jetdash/internal/backend"
	"jetdash/internal/models"
	"jetdash/internal/scheduler"
	"jetdash/internal/store"
)

// PollTask fetches the aircraft list once per interval and installs it in the
// store. A failed poll keeps the previous list but still counts as an update
// for the countdown.
type PollTask struct {
	source    backend.Source
	store     *store.Store
	countdown *scheduler.Countdown
	events    chan<- *models.PollEvent
	interval  time.Duration
	now       func() time.Time
}

// NewPollTask wires a poll task. events may be nil when history is disabled.
func NewPollTask(source backend.Source, st *store.Store, countdown *scheduler.Countdown, interval time.Duration, events chan<- *models.PollEvent) *PollTask {
	return &PollTask{
		source:    source,
		store:     st,
		countdown: countdown,
		events:    events,
		interval:  interval,
		now:       time.Now,
	}
}

func (t *PollTask) Name() string            { return "aircraft-poll" }
func (t *PollTask) Interval() time.Duration { return t.interval }

func (t *PollTask) Run(ctx context.Context) error {
	t.countdown.BeginRefresh()

	start := t.now()
	aircraft, err := t.source.FetchAircraft(ctx)
	ev := &models.PollEvent{Timestamp: start, Duration: t.now().Sub(start)}

	if err != nil {
		t.store.MarkAttempt()
		ev.Error = err.Error()
	} else {
		ev.OK = true
		ev.AircraftCount = len(aircraft)
		ev.Changed = t.store.Replace(aircraft)
		slog.Debug("Polled aircraft",
			"count", ev.AircraftCount,
			"changed", ev.Changed,
			"duration", ev.Duration,
		)
	}

	t.countdown.Start(ctx)
	t.record(ev)

	if err != nil {
		return fmt.Errorf("failed to poll aircraft: %w", err)
	}
	return nil
}

// record never blocks the poll; history is best effort
func (t *PollTask) record(ev *models.PollEvent) {
	if t.events == nil {
		return
	}
	select {
	case t.events <- ev:
	default:
		slog.Warn("Poll history queue full, dropping event", "timestamp", ev.Timestamp)
	}
}
