package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load from picking up a config.yaml in the package directory
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(ConfigPathEnv, "")
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv(ConfigPathEnv, path)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8085", cfg.APIEndpoint)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 60, cfg.RefreshPeriod)
	assert.Equal(t, time.Minute, cfg.RefreshInterval())
	assert.Nil(t, cfg.Site)
	assert.False(t, cfg.Demo)
	assert.Equal(t, 10, cfg.API.Timeout)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 512, cfg.Render.CardCacheSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	writeConfig(t, `
api_endpoint: http://jetspotter.lan:8085/
refresh_period: 30
site:
  latitude: 51.17348
  longitude: 5.45921
api:
  username: admin
  password: secret
history:
  keep: 50
log:
  level: DEBUG
  format: json
  file: /var/log/jetdash.log
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://jetspotter.lan:8085", cfg.APIEndpoint)
	assert.Equal(t, 30, cfg.RefreshPeriod)
	require.NotNil(t, cfg.Site)
	assert.InDelta(t, 51.17348, cfg.Site.Lat, 1e-9)
	assert.InDelta(t, 5.45921, cfg.Site.Lon, 1e-9)
	assert.Equal(t, "admin", cfg.API.Username)
	assert.Equal(t, 50, cfg.History.Keep)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/var/log/jetdash.log", cfg.Log.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	writeConfig(t, "refresh_period: 30\n")
	t.Setenv("JETDASH_REFRESH_PERIOD", "15")
	t.Setenv("JETDASH_DEMO", "true")
	t.Setenv("JETDASH_SITE_LATITUDE", "40.6")
	t.Setenv("JETDASH_SITE_LONGITUDE", "-73.7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.RefreshPeriod)
	assert.True(t, cfg.Demo)
	require.NotNil(t, cfg.Site)
	assert.InDelta(t, -73.7, cfg.Site.Lon, 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"refresh period", map[string]string{"JETDASH_REFRESH_PERIOD": "0"}, "refresh_period"},
		{"log level", map[string]string{"JETDASH_LOG_LEVEL": "verbose"}, "invalid log level"},
		{"log format", map[string]string{"JETDASH_LOG_FORMAT": "xml"}, "invalid log format"},
		{"site", map[string]string{"JETDASH_SITE_LATITUDE": "95", "JETDASH_SITE_LONGITUDE": "4"}, "out of range"},
		{"timeout", map[string]string{"JETDASH_API_TIMEOUT": "0"}, "api.timeout"},
		{"cache", map[string]string{"JETDASH_RENDER_CARD_CACHE_SIZE": "0"}, "card_cache_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_HistoryDisabledSkipsChecks(t *testing.T) {
	cfg := &Config{
		APIEndpoint:   "http://backend",
		ListenAddr:    ":8080",
		RefreshPeriod: 60,
		API:           APIConfig{Timeout: 10},
		Render:        RenderConfig{CardCacheSize: 1},
		Log:           LogConfig{Level: "info", Format: "text"},
	}

	assert.NoError(t, validate(cfg))
}
