package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"jetdash/internal/models"
)

// ConfigPathEnv points at an explicit config file
const ConfigPathEnv = "JETDASH_CONFIG_PATH"

// Config holds all configuration for the dashboard
type Config struct {
	APIEndpoint   string // base URL of the jetspotter backend
	ListenAddr    string
	RefreshPeriod int                 // seconds between polls
	Site          *models.Coordinates // nil when not configured
	DBPath        string
	Demo          bool // serve the built-in sample list instead of polling
	API           APIConfig
	History       HistoryConfig
	Render        RenderConfig
	Log           LogConfig
}

// APIConfig tunes the backend client
type APIConfig struct {
	Username string // basic auth for /api/config
	Password string
	Timeout  int // seconds
	MinGap   int // minimum seconds between requests, 0 disables
}

// HistoryConfig controls the poll_history table
type HistoryConfig struct {
	Enabled       bool
	BatchSize     int
	FlushInterval int // seconds
	Keep          int // rows kept after pruning, 0 keeps all
	QueueSize     int
}

type RenderConfig struct {
	CardCacheSize int
}

// LogConfig holds logging configuration. When File is set logs go to a
// rotating file instead of stdout.
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshPeriod) * time.Second
}

// Load loads configuration from defaults, an optional config file and
// JETDASH_* environment variables, in increasing order of precedence
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api_endpoint", "http://localhost:8085")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("refresh_period", 60)
	v.SetDefault("db_path", "jetdash.db")
	v.SetDefault("demo", false)
	v.SetDefault("api.timeout", 10)
	v.SetDefault("api.min_gap", 1)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.batch_size", 10)
	v.SetDefault("history.flush_interval", 60)
	v.SetDefault("history.keep", 1000)
	v.SetDefault("history.queue_size", 100)
	v.SetDefault("render.card_cache_size", 512)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/jetdash")
	v.AddConfigPath(".")

	if configPath := os.Getenv(ConfigPathEnv); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// a missing file is fine, defaults and env still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("JETDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		APIEndpoint:   strings.TrimRight(v.GetString("api_endpoint"), "/"),
		ListenAddr:    v.GetString("listen_addr"),
		RefreshPeriod: v.GetInt("refresh_period"),
		DBPath:        v.GetString("db_path"),
		Demo:          v.GetBool("demo"),
		API: APIConfig{
			Username: v.GetString("api.username"),
			Password: v.GetString("api.password"),
			Timeout:  v.GetInt("api.timeout"),
			MinGap:   v.GetInt("api.min_gap"),
		},
		History: HistoryConfig{
			Enabled:       v.GetBool("history.enabled"),
			BatchSize:     v.GetInt("history.batch_size"),
			FlushInterval: v.GetInt("history.flush_interval"),
			Keep:          v.GetInt("history.keep"),
			QueueSize:     v.GetInt("history.queue_size"),
		},
		Render: RenderConfig{
			CardCacheSize: v.GetInt("render.card_cache_size"),
		},
		Log: LogConfig{
			Level:      strings.ToLower(v.GetString("log.level")),
			Format:     strings.ToLower(v.GetString("log.format")),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}

	if v.IsSet("site.latitude") && v.IsSet("site.longitude") {
		cfg.Site = &models.Coordinates{
			Lat: v.GetFloat64("site.latitude"),
			Lon: v.GetFloat64("site.longitude"),
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.APIEndpoint == "" && !cfg.Demo {
		return fmt.Errorf("api_endpoint is required unless demo is enabled")
	}

	if cfg.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}

	if cfg.RefreshPeriod <= 0 {
		return fmt.Errorf("refresh_period must be greater than 0")
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be greater than 0")
	}

	if cfg.API.MinGap < 0 {
		return fmt.Errorf("api.min_gap must not be negative")
	}

	if cfg.Site != nil {
		if math.Abs(cfg.Site.Lat) > 90 || math.Abs(cfg.Site.Lon) > 180 {
			return fmt.Errorf("site coordinates out of range: %v, %v", cfg.Site.Lat, cfg.Site.Lon)
		}
	}

	if cfg.History.Enabled {
		if cfg.History.BatchSize <= 0 {
			return fmt.Errorf("history.batch_size must be greater than 0")
		}
		if cfg.History.FlushInterval <= 0 {
			return fmt.Errorf("history.flush_interval must be greater than 0")
		}
		if cfg.History.Keep < 0 {
			return fmt.Errorf("history.keep must not be negative")
		}
		if cfg.History.QueueSize <= 0 {
			return fmt.Errorf("history.queue_size must be greater than 0")
		}
		if cfg.DBPath == "" {
			return fmt.Errorf("db_path is required when history is enabled")
		}
	}

	if cfg.Render.CardCacheSize <= 0 {
		return fmt.Errorf("render.card_cache_size must be greater than 0")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[cfg.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
