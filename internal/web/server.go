package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"jetdash/internal/database"
	"jetdash/internal/models"
	"jetdash/internal/render"
	"jetdash/internal/scheduler"
	"jetdash/internal/store"
)

//go:embed static
var staticContent embed.FS

// ConfigSource is the part of the backend the config page and footer need
type ConfigSource interface {
	FetchConfig(ctx context.Context) (*models.BackendConfig, error)
	FetchVersion(ctx context.Context) (string, error)
}

// Config holds the web server settings
type Config struct {
	ListenAddr    string
	RefreshPeriod int                 // seconds, injected into the dashboard page
	Site          *models.Coordinates // nil leaves the map link generic
	Demo          bool                // every request renders the sample list
	SecureCookies bool
}

// Deps are the collaborators the handlers read from. Preferences and History
// may be nil, in which case the theme lives in a cookie and /api/history is
// disabled.
type Deps struct {
	Store       *store.Store
	Countdown   *scheduler.Countdown
	Backend     ConfigSource
	Renderer    *render.Renderer
	Preferences database.PreferenceRepository
	History     database.PollHistoryRepository
}

// Server is the dashboard HTTP front end
type Server struct {
	cfg     Config
	deps    Deps
	engine  *gin.Engine
	version *versionCache
	now     func() time.Time
}

func NewServer(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Countdown == nil || deps.Backend == nil || deps.Renderer == nil {
		return nil, errors.New("web: store, countdown, backend and renderer are required")
	}

	s := &Server{
		cfg:     cfg,
		deps:    deps,
		version: newVersionCache(deps.Backend, time.Duration(cfg.RefreshPeriod)*time.Second),
		now:     time.Now,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	if err := s.setupRoutes(engine); err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes(r *gin.Engine) error {
	staticFS, err := fs.Sub(staticContent, "static")
	if err != nil {
		return fmt.Errorf("failed to create static file server: %w", err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	r.GET("/", s.clientID(), s.handleDashboard)
	r.GET("/grid", s.handleGrid)
	r.GET("/config", s.clientID(), s.handleConfig)
	r.POST("/theme", s.clientID(), s.handleTheme)

	api := r.Group("/api")
	{
		api.GET("/aircraft", s.handleAircraft)
		api.GET("/version", s.handleVersion)
		api.GET("/status", s.handleStatus)
		api.GET("/history", s.handleHistory)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.engine,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}
	slog.Info("Web server listening", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	slog.Info("Web server stopped")
	return nil
}

// requestLogger logs every request except static assets
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/static/") {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// versionCache remembers the backend version once it is known and retries a
// failed lookup at most once per period
type versionCache struct {
	mu        sync.Mutex
	source    ConfigSource
	retry     time.Duration
	value     string
	lastTried time.Time
}

const fallbackVersion = "dev"

func newVersionCache(source ConfigSource, retry time.Duration) *versionCache {
	return &versionCache{source: source, retry: retry}
}

func (v *versionCache) Get(ctx context.Context) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.value != "" {
		return v.value
	}
	if !v.lastTried.IsZero() && time.Since(v.lastTried) < v.retry {
		return fallbackVersion
	}
	v.lastTried = time.Now()

	version, err := v.source.FetchVersion(ctx)
	if err != nil {
		slog.Warn("Error fetching backend version", "error", err)
		return fallbackVersion
	}
	v.value = version
	return version
}
