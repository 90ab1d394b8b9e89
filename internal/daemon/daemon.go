package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"jetdash/internal/backend"
	"jetdash/internal/config"
	"jetdash/internal/database"
	"jetdash/internal/models"
	"jetdash/internal/render"
	"jetdash/internal/scheduler"
	"jetdash/internal/store"
	"jetdash/internal/tasks"
	"jetdash/internal/web"
)

// Backend is everything the dashboard asks of the jetspotter API
type Backend interface {
	backend.Source
	web.ConfigSource
}

// NewBackend returns the built-in sample source in demo mode and an HTTP
// client for the configured endpoint otherwise
func NewBackend(cfg *config.Config) Backend {
	if cfg.Demo {
		return backend.DemoSource{}
	}
	return backend.NewClient(backend.Config{
		BaseURL:  cfg.APIEndpoint,
		Timeout:  time.Duration(cfg.API.Timeout) * time.Second,
		MinGap:   time.Duration(cfg.API.MinGap) * time.Second,
		Username: cfg.API.Username,
		Password: cfg.API.Password,
	})
}

// Frontend presents the shared store until ctx is cancelled or it returns by
// itself, which stops the daemon
type Frontend func(ctx context.Context) error

// Daemon wires the poller, the history recorder and a frontend together
type Daemon struct {
	cfg       *config.Config
	db        *database.DB // nil when db_path is empty
	backend   Backend
	store     *store.Store
	countdown *scheduler.Countdown
	scheduler *scheduler.Scheduler
	recorder  *tasks.PollRecorder
	renderer  *render.Renderer
}

// New creates a new daemon instance
func New(cfg *config.Config) (*Daemon, error) {
	d := &Daemon{
		cfg:       cfg,
		backend:   NewBackend(cfg),
		store:     store.New(),
		countdown: scheduler.NewCountdown(cfg.RefreshInterval()),
		scheduler: scheduler.New(),
	}

	if cfg.DBPath != "" {
		db, err := database.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		d.db = db
	}

	renderer, err := render.NewRenderer(cfg.Render.CardCacheSize)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.renderer = renderer

	var events chan *models.PollEvent
	if cfg.History.Enabled && d.db != nil {
		events = make(chan *models.PollEvent, cfg.History.QueueSize)
		d.recorder = tasks.NewPollRecorder(
			d.db.PollHistoryRepository(),
			events,
			cfg.History.BatchSize,
			time.Duration(cfg.History.FlushInterval)*time.Second,
			cfg.History.Keep,
		)
	}

	d.scheduler.AddTask(tasks.NewPollTask(d.backend, d.store, d.countdown, cfg.RefreshInterval(), events))
	return d, nil
}

func (d *Daemon) Store() *store.Store {
	return d.store
}

func (d *Daemon) Countdown() *scheduler.Countdown {
	return d.countdown
}

// WebServer builds the HTTP frontend on top of the daemon's state
func (d *Daemon) WebServer() (*web.Server, error) {
	deps := web.Deps{
		Store:     d.store,
		Countdown: d.countdown,
		Backend:   d.backend,
		Renderer:  d.renderer,
	}
	if d.db != nil {
		deps.Preferences = d.db.PreferenceRepository()
	}
	if d.recorder != nil {
		deps.History = d.db.PollHistoryRepository()
	}

	return web.NewServer(web.Config{
		ListenAddr:    d.cfg.ListenAddr,
		RefreshPeriod: d.cfg.RefreshPeriod,
		Site:          d.cfg.Site,
		Demo:          d.cfg.Demo,
	}, deps)
}

// Run polls in the background and runs the frontend. It returns when ctx is
// cancelled, the frontend returns, or any part fails.
func (d *Daemon) Run(ctx context.Context, frontend Frontend) error {
	slog.Info("Starting daemon",
		"api_endpoint", d.cfg.APIEndpoint,
		"refresh_period", d.cfg.RefreshPeriod,
		"demo", d.cfg.Demo,
		"history", d.recorder != nil,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.scheduler.Run(gctx)
	})

	if d.recorder != nil {
		g.Go(func() error {
			if err := d.recorder.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("poll recorder stopped: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		return frontend(gctx)
	})

	err := g.Wait()
	d.countdown.Stop()
	slog.Info("Daemon stopped")
	return err
}

// Close releases the database
func (d *Daemon) Close() error {
	if d.db == nil {
		return nil
	}
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
