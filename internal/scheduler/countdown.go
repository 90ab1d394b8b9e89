package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Phase is the observable state of the refresh cycle
type Phase int

const (
	// PhaseRefreshing covers a poll in flight and an expired countdown
	PhaseRefreshing Phase = iota
	PhaseIdle
)

func (p Phase) String() string {
	if p == PhaseIdle {
		return "idle"
	}
	return "refreshing"
}

const RefreshingText = "Refreshing..."

// Countdown tracks the time left until the next poll. It is display only:
// polls are driven by the scheduler's own ticker, never by the countdown.
type Countdown struct {
	mu         sync.Mutex
	period     time.Duration
	lastUpdate time.Time
	polling    bool
	stop       context.CancelFunc
	onTick     func(display string)

	now  func() time.Time
	tick time.Duration
}

func NewCountdown(period time.Duration) *Countdown {
	return &Countdown{
		period:  period,
		polling: true,
		now:     time.Now,
		tick:    time.Second,
	}
}

// OnTick sets the callback invoked with Display() on every tick
func (c *Countdown) OnTick(fn func(display string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = fn
}

func (c *Countdown) Period() time.Duration {
	return c.period
}

// BeginRefresh marks a poll as outstanding
func (c *Countdown) BeginRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polling = true
}

// Start records now as the last update and starts a fresh one-second ticker.
// Any ticker started by an earlier call is stopped first.
func (c *Countdown) Start(ctx context.Context) {
	c.mu.Lock()
	if c.stop != nil {
		c.stop()
	}
	tickCtx, cancel := context.WithCancel(ctx)
	c.stop = cancel
	c.lastUpdate = c.now()
	c.polling = false
	interval, onTick := c.tick, c.onTick
	c.mu.Unlock()

	c.emit(onTick)
	go c.run(tickCtx, interval, onTick)
}

// Stop halts the ticker, leaving the last update in place
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

func (c *Countdown) run(ctx context.Context, interval time.Duration, onTick func(string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.emit(onTick)
		}
	}
}

func (c *Countdown) emit(onTick func(string)) {
	if onTick != nil {
		onTick(c.Display())
	}
}

func (c *Countdown) LastUpdate() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUpdate
}

// SecondsLeft is the period minus the whole seconds elapsed since the last
// update. It goes negative once the next poll is overdue.
func (c *Countdown) SecondsLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secondsLeft()
}

func (c *Countdown) secondsLeft() int {
	if c.lastUpdate.IsZero() {
		return 0
	}
	elapsed := int(c.now().Sub(c.lastUpdate) / time.Second)
	return int(c.period/time.Second) - elapsed
}

func (c *Countdown) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.polling || c.lastUpdate.IsZero() || c.secondsLeft() <= 0 {
		return PhaseRefreshing
	}
	return PhaseIdle
}

// Display renders the countdown as m:ss, "Refreshing..." once it has run out,
// or "-" before the first update
func (c *Countdown) Display() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastUpdate.IsZero() {
		return "-"
	}
	return FormatSecondsLeft(c.secondsLeft())
}

func FormatSecondsLeft(secs int) string {
	if secs <= 0 {
		return RefreshingText
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
