package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"jetdash/internal/config"
	"jetdash/internal/daemon"
	"jetdash/internal/tui"
	"jetdash/internal/version"
)

func initLogger(cfg *config.Config, fallback io.Writer) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	out := fallback
	if cfg.Log.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

var (
	configPath string
	demo       bool
)

// loadConfig reads the configuration and sets up logging. Logs go to out
// unless a log file is configured.
func loadConfig(out io.Writer) (*config.Config, error) {
	if configPath != "" {
		os.Setenv(config.ConfigPathEnv, configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if demo {
		cfg.Demo = true
	}

	initLogger(cfg, out)
	return cfg, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "jetdash",
		Short:         "Dashboard for the aircraft spotted by a jetspotter backend",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "Use the built-in sample aircraft instead of the backend")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Poll the backend and serve the web dashboard",
			RunE:  runServe,
		},
		newListCmd(),
		newTUICmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("jetdash failed", "error", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	d, err := daemon.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Error("Error closing daemon", "error", err)
		}
	}()

	srv, err := d.WebServer()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if err := d.Run(ctx, srv.Run); err != nil {
		return err
	}
	slog.Info("Shutdown complete")
	return nil
}

func newTUICmd() *cobra.Command {
	var filters viewFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Poll the backend and show the dashboard in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the terminal belongs to the dashboard, so logs only go to a file
			cfg, err := loadConfig(io.Discard)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			d, err := daemon.New(cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, stop := signalContext()
			defer stop()

			initial := filters.state()
			return d.Run(ctx, func(ctx context.Context) error {
				return tui.Run(ctx, d.Store(), d.Countdown(), initial)
			})
		},
	}
	filters.register(cmd)
	return cmd
}
