package daemon

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetdash/internal/backend"
	"jetdash/internal/config"
	"jetdash/internal/database"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		APIEndpoint:   "http://backend.invalid",
		ListenAddr:    "127.0.0.1:0",
		RefreshPeriod: 60,
		DBPath:        filepath.Join(t.TempDir(), "jetdash.db"),
		Demo:          true,
		API:           config.APIConfig{Timeout: 1},
		History: config.HistoryConfig{
			Enabled:       true,
			BatchSize:     10,
			FlushInterval: 60,
			Keep:          100,
			QueueSize:     10,
		},
		Render: config.RenderConfig{CardCacheSize: 16},
	}
}

func TestNewBackend(t *testing.T) {
	cfg := testConfig(t)
	assert.IsType(t, backend.DemoSource{}, NewBackend(cfg))

	cfg.Demo = false
	assert.IsType(t, &backend.Client{}, NewBackend(cfg))
}

func TestDaemon_RunPollsAndRecords(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.BatchSize = 1
	d, err := New(cfg)
	require.NoError(t, err)

	history := d.db.PollHistoryRepository()
	recorded := func(ctx context.Context) error {
		for {
			events, err := history.Recent(1)
			if err != nil {
				return err
			}
			if len(events) > 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(10 * time.Millisecond):
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Run(ctx, recorded))

	snap := d.Store().Snapshot()
	assert.Len(t, snap.Aircraft, 7)
	assert.False(t, d.Countdown().LastUpdate().IsZero())
	require.NoError(t, d.Close())

	db, err := database.New(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()
	events, err := db.PollHistoryRepository().Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].OK)
	assert.Equal(t, 7, events[0].AircraftCount)
}

func TestDaemon_FrontendErrorStopsRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false
	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Close()

	boom := errors.New("listen failed")
	err = d.Run(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestDaemon_WithoutDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = ""
	d, err := New(cfg)
	require.NoError(t, err)

	assert.Nil(t, d.recorder)
	srv, err := d.WebServer()
	require.NoError(t, err)
	assert.NotNil(t, srv.Handler())
	assert.NoError(t, d.Close())
}

func TestDaemon_ServeUntilCancelled(t *testing.T) {
	cfg := testConfig(t)
	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Close()

	srv, err := d.WebServer()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, srv.Run) }()

	require.Eventually(t, func() bool { return d.Store().Snapshot().Loaded }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("daemon did not stop")
	}
}
