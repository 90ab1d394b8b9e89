package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"jetdash/internal/models"
)

// DefaultTimeout bounds every request to the backend
const DefaultTimeout = 10 * time.Second

// Source supplies the aircraft list for a poll
type Source interface {
	FetchAircraft(ctx context.Context) ([]models.Aircraft, error)
}

// StatusError is returned when the backend answers with a non-2xx status
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Client talks to the jetspotter backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	poll       *rate.Limiter // /api/aircraft
	pages      *rate.Limiter // /api/config and /api/version
	username   string
	password   string
}

// Config holds client settings
type Config struct {
	BaseURL  string        // e.g. "http://localhost:8085"
	Timeout  time.Duration // per request, DefaultTimeout when zero
	MinGap   time.Duration // minimum spacing between polls and between page lookups, unlimited when zero
	Username string        // basic auth for /api/config
	Password string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Inf
	if cfg.MinGap > 0 {
		limit = rate.Every(cfg.MinGap)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		poll:       rate.NewLimiter(limit, 3),
		pages:      rate.NewLimiter(limit, 3),
		username:   cfg.Username,
		password:   cfg.Password,
	}
}

// FetchAircraft returns the current aircraft list
func (c *Client) FetchAircraft(ctx context.Context) ([]models.Aircraft, error) {
	var aircraft []models.Aircraft
	if err := c.getJSON(ctx, c.poll, "/api/aircraft", false, &aircraft); err != nil {
		return nil, err
	}
	if aircraft == nil {
		aircraft = []models.Aircraft{}
	}
	return aircraft, nil
}

// FetchConfig returns the backend configuration
func (c *Client) FetchConfig(ctx context.Context) (*models.BackendConfig, error) {
	var cfg models.BackendConfig
	if err := c.getJSON(ctx, c.pages, "/api/config", true, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FetchVersion returns the backend version string
func (c *Client) FetchVersion(ctx context.Context) (string, error) {
	var info models.VersionInfo
	if err := c.getJSON(ctx, c.pages, "/api/version", false, &info); err != nil {
		return "", err
	}
	if info.Version == "" {
		return "", fmt.Errorf("/api/version returned an empty version")
	}
	return info.Version, nil
}

func (c *Client) getJSON(ctx context.Context, limiter *rate.Limiter, path string, auth bool, out any) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if auth && c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}
